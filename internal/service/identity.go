// Package service contains the business logic layer: validation, the
// find-or-create identity rules, and session orchestration. Handlers
// parse HTTP and delegate here; repositories only see validated values.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// IdentityService owns everything about user records: the
// find-or-create resolution the OAuth flow relies on, and the CRUD
// behind /api/users.
type IdentityService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(users repository.UserRepository, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		users:  users,
		logger: logger,
	}
}

// ResolveOrCreate finds the user for an email or creates one.
//
// This is the heart of OAuth login. The rules, in order:
//
//  1. Look up by email (byte-wise match — the store's BINARY collation).
//  2. Found → return the row UNCHANGED. A re-login never overwrites a
//     name or phone the user edited on the site, no matter what the
//     provider sent this time.
//  3. Not found → insert (name, email), then re-read by the generated
//     id so the caller gets the canonical row with store-assigned
//     defaults, not our in-memory guess.
//
// The return value is identical whether the user pre-existed or was
// just created; callers cannot tell the difference. That is a
// documented contract, not an oversight — extend the signature before
// ever assuming new-user semantics here.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, name, email string) (*model.User, error) {
	if email == "" {
		return nil, apperror.ValidationFailed("email", "El email es obligatorio.")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("resolving user by email: %w", err)
	}

	user := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user for %s: %w", email, err)
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("re-reading created user %d: %w", user.ID, err)
	}

	s.logger.Info("user created via identity resolution",
		slog.Int64("userID", created.ID),
	)

	return created, nil
}

// Register creates a user from a direct POST /api/users submission.
// Unlike ResolveOrCreate, an existing email is a conflict here — the
// caller asked to create, not to log in.
func (s *IdentityService) Register(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "Nombre y email son obligatorios.")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "Nombre y email son obligatorios.")
	}

	user := &model.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("re-reading registered user %d: %w", user.ID, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", created.ID),
	)

	return created, nil
}

// Get returns the user for an ID, or apperror.ErrNotFound.
func (s *IdentityService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update rewrites a user's profile. Name and email are required; phone
// is optional and nil clears it.
func (s *IdentityService) Update(ctx context.Context, id int64, name, email string, phone *string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" {
		return nil, apperror.ValidationFailed("name", "Nombre y email son obligatorios.")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Phone = phone

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", slog.Int64("userID", user.ID))

	return user, nil
}
