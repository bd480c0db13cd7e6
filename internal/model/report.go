package model

import "time"

// Report is an incident report submitted through the public form.
// Reports are insert-only: once stored they are never updated or
// deleted by this system.
type Report struct {
	ID            int64     `json:"report_id"       db:"report_id"`
	IncidentType  string    `json:"incident_type"   db:"incident_type"`
	Severity      string    `json:"severity"        db:"severity"`
	Description   string    `json:"description"     db:"description"`
	WantsFollowUp bool      `json:"wants_follow_up" db:"wants_follow_up"`
	ContactMethod *string   `json:"contact_method"  db:"contact_method"`
	CreatedAt     time.Time `json:"-"               db:"created_at"`
}
