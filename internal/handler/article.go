package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/service"
)

// ArticleHandler serves read-only help articles.
type ArticleHandler struct {
	articles *service.ArticleService
	logger   *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		logger:   logger,
	}
}

// HandleGet returns an article with its sections in display order.
//
// HTTP: GET /api/articles/{slug}
// 200 {article fields, sections: [...]} — 404 unknown slug (no sections
// array is ever attached to an error response)
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	article, err := h.articles.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			h.logger.Error("getting article failed",
				slog.String("slug", r.PathValue("slug")),
				slog.String("error", err.Error()),
			)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, article)
}
