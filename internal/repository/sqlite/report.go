package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// ReportDB implements repository.ReportRepository over the shared pool.
type ReportDB struct {
	conn *sql.DB
}

var _ repository.ReportRepository = (*ReportDB)(nil)

// Create inserts an incident report and fills in the generated ID.
// Reports are write-once; there is no update or delete path.
func (db *ReportDB) Create(ctx context.Context, report *model.Report) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO reports (incident_type, severity, description, wants_follow_up, contact_method)
		 VALUES (?, ?, ?, ?, ?)`,
		report.IncidentType,
		report.Severity,
		report.Description,
		report.WantsFollowUp,
		report.ContactMethod,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading generated report id: %w", err)
	}
	report.ID = id

	return nil
}
