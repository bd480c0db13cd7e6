package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// ArticleDB implements repository.ArticleRepository over the shared pool.
// Articles are read-only here; content is loaded out-of-band.
type ArticleDB struct {
	conn *sql.DB
}

var _ repository.ArticleRepository = (*ArticleDB)(nil)

// GetBySlug returns the article for the given slug with its sections
// attached, ordered by display_order ascending. That ORDER BY is part of
// the API contract — the front end renders sections in list order.
//
// Returns apperror.ErrNotFound when the slug doesn't resolve, and in
// that case no section query runs at all.
func (db *ArticleDB) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var a model.Article
	err := db.conn.QueryRowContext(ctx,
		`SELECT article_id, slug, title, summary, created_at
		 FROM articles WHERE slug = ?`,
		slug,
	).Scan(
		&a.ID,
		&a.Slug,
		&a.Title,
		&a.Summary,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("artículo", slug)
		}
		return nil, fmt.Errorf("sqlite: getting article %q: %w", slug, err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT section_id, article_id, heading, body, display_order
		 FROM article_sections
		 WHERE article_id = ?
		 ORDER BY display_order ASC`,
		a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing sections for article %d: %w", a.ID, err)
	}
	defer rows.Close()

	// Empty slice, not nil: an article without sections still marshals
	// as "sections": [].
	a.Sections = []model.ArticleSection{}
	for rows.Next() {
		var s model.ArticleSection
		if err := rows.Scan(&s.ID, &s.ArticleID, &s.Heading, &s.Body, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning section of article %d: %w", a.ID, err)
		}
		a.Sections = append(a.Sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating sections of article %d: %w", a.ID, err)
	}

	return &a, nil
}
