package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// UserDB implements repository.UserRepository over the shared pool.
type UserDB struct {
	conn *sql.DB
}

var _ repository.UserRepository = (*UserDB)(nil)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite surfaces these with the extended result
// code SQLITE_CONSTRAINT_UNIQUE.
func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// Create inserts a new user and fills in the generated ID.
//
// Only the ID comes back from the INSERT — the canonical row (with
// store-assigned timestamps) is obtained by re-reading with GetByID,
// which is exactly what the identity-resolution flow does.
//
// A duplicate email surfaces as apperror.Conflict so the HTTP layer can
// answer 409 instead of a generic 500.
func (db *UserDB) Create(ctx context.Context, user *model.User) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, phone) VALUES (?, ?, ?)`,
		user.Name,
		user.Email,
		user.Phone,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("usuario", user.Email)
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading generated user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by their generated ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT user_id, name, email, phone, created_at, updated_at
		 FROM users WHERE user_id = ?`,
		id,
	), fmt.Sprintf("%d", id))
}

// GetByEmail retrieves a user by email.
//
// The comparison uses the column's BINARY collation: byte-wise and
// case-sensitive. "Ana@example.com" and "ana@example.com" are two
// different identities as far as this store is concerned.
func (db *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.scanUser(db.conn.QueryRowContext(ctx,
		`SELECT user_id, name, email, phone, created_at, updated_at
		 FROM users WHERE email = ?`,
		email,
	), email)
}

// Update rewrites a user's profile fields.
// Returns apperror.ErrNotFound if the ID doesn't resolve to a row, and
// apperror.Conflict if the new email already belongs to someone else.
func (db *UserDB) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, updated_at = ?
		 WHERE user_id = ?`,
		user.Name,
		user.Email,
		user.Phone,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("usuario", user.Email)
		}
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of user %d: %w", user.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("usuario", fmt.Sprintf("%d", user.ID))
	}

	return nil
}

func (db *UserDB) scanUser(row *sql.Row, key string) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("usuario", key)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", key, err)
	}
	return &u, nil
}
