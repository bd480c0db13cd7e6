package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// ReportService validates and stores incident reports.
type ReportService struct {
	reports repository.ReportRepository
	logger  *slog.Logger
}

// NewReportService creates a ReportService.
func NewReportService(reports repository.ReportRepository, logger *slog.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		logger:  logger,
	}
}

// Submit validates and persists one incident report.
//
// incidentType, severity, and description are all required; validation
// failures never reach the store, so a rejected submission leaves no
// row behind. contactMethod stays nil when the reporter didn't ask for
// follow-up contact.
func (s *ReportService) Submit(ctx context.Context, report *model.Report) (*model.Report, error) {
	report.IncidentType = strings.TrimSpace(report.IncidentType)
	report.Severity = strings.TrimSpace(report.Severity)
	report.Description = strings.TrimSpace(report.Description)

	if report.IncidentType == "" || report.Severity == "" || report.Description == "" {
		return nil, apperror.ValidationFailed("report",
			"Tipo de incidente, gravedad y descripción son obligatorios.")
	}

	if err := s.reports.Create(ctx, report); err != nil {
		s.logger.Error("failed to store report",
			slog.String("incidentType", report.IncidentType),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing report: %w", err)
	}

	s.logger.Info("report submitted",
		slog.Int64("reportID", report.ID),
		slog.String("severity", report.Severity),
	)

	return report, nil
}
