// Package repository defines the persistence interfaces the service
// layer programs against. The sqlite subpackage provides the concrete
// implementation; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/mquintana/help-center/internal/model"
)

// UserRepository handles persistence for users.
//
// Create only assigns the generated ID — callers that need the full
// canonical row (store-assigned timestamps, normalized nulls) re-read it
// with GetByID afterwards. That mirrors how the store works: an INSERT
// yields an id, not a row.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// ReportRepository persists incident reports. Reports are insert-only.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
}

// ArticleRepository reads help articles. Content is authored out-of-band;
// there are no write methods on purpose.
type ArticleRepository interface {
	// GetBySlug returns the article with its sections ordered by
	// display_order ascending.
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
}

// SessionStore maps opaque session tokens to user IDs.
//
// This is the explicit serialize/deserialize half of login: Set is
// called once at login time, Get on every request carrying a session
// cookie, Destroy on logout. Get returns apperror.ErrNotFound for
// unknown or expired tokens; callers treat that as "not logged in",
// never as a failure.
type SessionStore interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Destroy(ctx context.Context, token string) error
}
