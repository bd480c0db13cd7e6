package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mquintana/help-center/internal/apperror"
	"github.com/mquintana/help-center/internal/model"
	sqliteRepo "github.com/mquintana/help-center/internal/repository/sqlite"
	"github.com/mquintana/help-center/internal/service"
)

// stubArticleRepo lets article tests seed content without a write API.
type stubArticleRepo struct {
	articles map[string]*model.Article
}

func (s *stubArticleRepo) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	a, ok := s.articles[slug]
	if !ok {
		return nil, apperror.NotFound("artículo", slug)
	}
	return a, nil
}

// testEnv is a router wired exactly like the server's /api tree, but on
// an in-memory database.
type testEnv struct {
	router   *chi.Mux
	db       *sqliteRepo.DB
	articles *stubArticleRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	articles := &stubArticleRepo{articles: make(map[string]*model.Article)}

	identityService := service.NewIdentityService(db.Users(), logger)
	reportService := service.NewReportService(db.Reports(), logger)
	articleService := service.NewArticleService(articles, logger)

	userHandler := NewUserHandler(identityService, logger)
	reportHandler := NewReportHandler(reportService, logger)
	articleHandler := NewArticleHandler(articleService, logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/reports", reportHandler.HandleCreate)
		r.Post("/users", userHandler.HandleCreate)
		r.Get("/users/{id}", userHandler.HandleGet)
		r.Put("/users/{id}", userHandler.HandleUpdate)
		r.Get("/articles/{slug}", articleHandler.HandleGet)
	})

	return &testEnv{router: router, db: db, articles: articles}
}

// doJSON performs a request with a JSON body and returns the recorder.
func (e *testEnv) doJSON(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a response body into a map for assertions.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}
