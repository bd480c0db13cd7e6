package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	"github.com/mquintana/help-center/internal/repository"
)

// ArticleService reads help articles. The repository guarantees section
// ordering; this layer only validates the slug.
type ArticleService struct {
	articles repository.ArticleRepository
	logger   *slog.Logger
}

// NewArticleService creates an ArticleService.
func NewArticleService(articles repository.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		articles: articles,
		logger:   logger,
	}
}

// GetBySlug returns an article with its ordered sections, or
// apperror.ErrNotFound for an unknown slug.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperror.ValidationFailed("slug", "El identificador del artículo es obligatorio.")
	}

	return s.articles.GetBySlug(ctx, slug)
}
