package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquintana/help-center/internal/model"
)

func TestArticleGet(t *testing.T) {
	env := newTestEnv(t)
	env.articles.articles["como-reportar"] = &model.Article{
		ID:      1,
		Slug:    "como-reportar",
		Title:   "Cómo reportar un incidente",
		Summary: "Guía paso a paso.",
		Sections: []model.ArticleSection{
			{ID: 1, ArticleID: 1, Heading: "Primera", Body: "Uno.", DisplayOrder: 1},
			{ID: 2, ArticleID: 1, Heading: "Segunda", Body: "Dos.", DisplayOrder: 2},
		},
	}

	rec := env.doJSON(t, http.MethodGet, "/api/articles/como-reportar", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "como-reportar", body["slug"])
	assert.Equal(t, "Cómo reportar un incidente", body["title"])

	sections, ok := body["sections"].([]any)
	require.True(t, ok, "sections is not an array: %v", body["sections"])
	require.Len(t, sections, 2)

	first, ok := sections[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Primera", first["heading"])
}

func TestArticleGet_EmptySections(t *testing.T) {
	env := newTestEnv(t)
	env.articles.articles["vacio"] = &model.Article{
		ID:       2,
		Slug:     "vacio",
		Title:    "Artículo sin secciones",
		Sections: []model.ArticleSection{},
	}

	rec := env.doJSON(t, http.MethodGet, "/api/articles/vacio", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// [] on the wire, never null.
	sections, ok := decodeBody(t, rec)["sections"].([]any)
	assert.True(t, ok, "sections marshaled as null")
	assert.Empty(t, sections)
}

func TestArticleGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/articles/no-existe", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "not_found", body["error"])
	// Error responses carry no article fields.
	assert.NotContains(t, body, "sections")
}
