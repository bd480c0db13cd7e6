package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/service"
)

// ReportHandler receives incident reports from the public form.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// reportRequest matches the form's camelCase payload.
type reportRequest struct {
	IncidentType  string  `json:"incidentType"`
	Severity      string  `json:"severity"`
	Description   string  `json:"description"`
	WantsFollowUp bool    `json:"wantsFollowUp"`
	ContactMethod *string `json:"contactMethod"`
}

// HandleCreate stores one incident report.
//
// HTTP: POST /api/reports
// 201 {message, reportId} — 400 missing required field
func (h *ReportHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Cuerpo JSON inválido."))
		return
	}

	report, err := h.reports.Submit(r.Context(), &model.Report{
		IncidentType:  req.IncidentType,
		Severity:      req.Severity,
		Description:   req.Description,
		WantsFollowUp: req.WantsFollowUp,
		ContactMethod: req.ContactMethod,
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			h.logger.Error("storing report failed", slog.String("error", err.Error()))
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Reporte enviado exitosamente. Gracias por tu contribución.",
		"reportId": report.ID,
	})
}
