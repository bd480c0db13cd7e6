// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents an account on the help site.
//
// Users arrive two ways: OAuth login (Google or GitHub) or direct
// registration through POST /api/users. In both cases the email is the
// natural identity key — the UNIQUE constraint on users.email guarantees
// the same address never produces two rows, no matter which provider it
// came through.
//
// WHY Phone *string?
// Phone is genuinely optional and the API contract promises a JSON null
// (not "") when it was never provided. A nil pointer marshals to null;
// an empty string would marshal to "". The same reasoning applies to
// Report.ContactMethod.
//
// The JSON field names are snake_case because they mirror the column
// names the site's front end already consumes.
type User struct {
	ID        int64     `json:"user_id"   db:"user_id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	Phone     *string   `json:"phone"     db:"phone"`
	CreatedAt time.Time `json:"-"         db:"created_at"`
	UpdatedAt time.Time `json:"-"         db:"updated_at"`
}
