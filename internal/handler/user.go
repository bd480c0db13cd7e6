package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/service"
)

// UserHandler serves the /api/users CRUD surface.
type UserHandler struct {
	identity *service.IdentityService
	logger   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(identity *service.IdentityService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		identity: identity,
		logger:   logger,
	}
}

// userRequest is the request body for create and update. The camelCase-
// free field names match what the site's forms already send.
type userRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// HandleCreate registers a new user.
//
// HTTP: POST /api/users
// 201 {message, userId} — 400 missing field — 409 duplicate email
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Cuerpo JSON inválido."))
		return
	}

	user, err := h.identity.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logError(r, "creating user", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuario registrado exitosamente.",
		"userId":  user.ID,
	})
}

// HandleGet returns one user.
//
// HTTP: GET /api/users/{id}
// 200 {user_id, name, email, phone} — 404 unknown id
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.identity.Get(r.Context(), id)
	if err != nil {
		h.logError(r, "getting user", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdate rewrites a user's profile.
//
// HTTP: PUT /api/users/{id}
// 200 {message} — 400 missing field — 404 unknown id — 409 duplicate email
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "Cuerpo JSON inválido."))
		return
	}

	if _, err := h.identity.Update(r.Context(), id, req.Name, req.Email, req.Phone); err != nil {
		h.logError(r, "updating user", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Perfil actualizado exitosamente.",
	})
}

// parseID converts the {id} path value. Non-numeric ids are a
// validation problem, not a 404 — /api/users/abc is a malformed
// request, not a missing user.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ValidationFailed("id", "El identificador de usuario es inválido.")
	}
	return id, nil
}

// logError records store-level failures; expected domain outcomes
// (not found, conflict, validation) stay out of the error log.
func (h *UserHandler) logError(r *http.Request, op string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return
	}
	h.logger.Error(op,
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}
