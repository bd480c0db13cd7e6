package model

import "time"

// Article is a help article, looked up by its URL slug.
//
// Articles and their sections are read-only from this backend's point of
// view — content is authored out-of-band and loaded straight into the
// database. No create/update endpoints exist for them.
type Article struct {
	ID        int64            `json:"article_id" db:"article_id"`
	Slug      string           `json:"slug"       db:"slug"`
	Title     string           `json:"title"      db:"title"`
	Summary   string           `json:"summary"    db:"summary"`
	CreatedAt time.Time        `json:"-"          db:"created_at"`
	Sections  []ArticleSection `json:"sections"`
}

// ArticleSection is one block of an article's body. Sections belonging
// to an article are always returned ordered by DisplayOrder ascending —
// that ordering is part of the API contract, not a presentation detail.
type ArticleSection struct {
	ID           int64  `json:"section_id"    db:"section_id"`
	ArticleID    int64  `json:"article_id"    db:"article_id"`
	Heading      string `json:"heading"       db:"heading"`
	Body         string `json:"body"          db:"body"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}
