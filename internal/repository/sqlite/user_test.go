package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
)

func newTestUserDB(t *testing.T) (*DB, *UserDB) {
	t.Helper()
	db := newTestDB(t)
	return db, db.Users()
}

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, u *UserDB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	_, u := newTestUserDB(t)

	user := &model.User{Name: "Ana", Email: "ana@example.com"}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// IDs are store-assigned and start at 1 on a fresh database.
	if user.ID != 1 {
		t.Errorf("Create() set ID = %d, want 1", user.ID)
	}

	second := &model.User{Name: "Bruno", Email: "bruno@example.com"}
	if err := u.Create(context.Background(), second); err != nil {
		t.Fatalf("Create() second user error = %v", err)
	}
	if second.ID != 2 {
		t.Errorf("Create() second ID = %d, want 2", second.ID)
	}
}

func TestUserCreate_DuplicateEmailIsConflict(t *testing.T) {
	_, u := newTestUserDB(t)
	createTestUser(t, u, "Ana", "ana@example.com")

	duplicate := &model.User{Name: "Otra Ana", Email: "ana@example.com"}
	err := u.Create(context.Background(), duplicate)
	if err == nil {
		t.Fatal("Create() should have failed for a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}

	// The duplicate must not have created a second row.
	var count int
	row := u.conn.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, "ana@example.com")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("row count for duplicate email = %d, want 1", count)
	}
}

func TestUserGetByID(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Ana", "ana@example.com")

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Name != "Ana" {
		t.Errorf("Name = %q, want %q", found.Name, "Ana")
	}
	if found.Phone != nil {
		t.Errorf("Phone = %v, want nil for a user created without one", *found.Phone)
	}
	if found.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated by the store default")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	_, u := newTestUserDB(t)

	_, err := u.GetByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByEmail(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Ana", "ana@example.com")

	found, err := u.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
}

func TestUserGetByEmail_CaseSensitive(t *testing.T) {
	// The email column uses BINARY collation: a differently-cased
	// address is a different identity.
	_, u := newTestUserDB(t)
	createTestUser(t, u, "Ana", "ana@example.com")

	_, err := u.GetByEmail(context.Background(), "ANA@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail() with different case error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdate(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Ana", "ana@example.com")

	phone := "+34 600 000 000"
	created.Name = "Ana María"
	created.Phone = &phone

	if err := u.Update(context.Background(), created); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := u.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() after update: %v", err)
	}
	if found.Name != "Ana María" {
		t.Errorf("Name after update = %q, want %q", found.Name, "Ana María")
	}
	if found.Phone == nil || *found.Phone != phone {
		t.Errorf("Phone after update = %v, want %q", found.Phone, phone)
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	_, u := newTestUserDB(t)

	ghost := &model.User{ID: 404, Name: "Nadie", Email: "nadie@example.com"}
	err := u.Update(context.Background(), ghost)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUserUpdate_DuplicateEmailIsConflict(t *testing.T) {
	_, u := newTestUserDB(t)
	createTestUser(t, u, "Ana", "ana@example.com")
	other := createTestUser(t, u, "Bruno", "bruno@example.com")

	other.Email = "ana@example.com"
	err := u.Update(context.Background(), other)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Update() error = %v, want ErrConflict", err)
	}
}
