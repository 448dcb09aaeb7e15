package api_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-notebook/backend/internal/model"
	"github.com/recipe-notebook/backend/internal/service"
)

func TestGenreAPI_ListReportsHeadroom(t *testing.T) {
	env := setupAPITest(t)

	_, err := env.genres.Add(context.Background(), "スープ")
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/genres", nil, "")
	assertStatus(t, w, http.StatusOK)

	resp := decodeBody(t, w)
	assert.Equal(t, float64(service.GenreLimit), resp["limit"])
	assert.Equal(t, float64(service.GenreLimit-1), resp["remaining"])
	assert.Len(t, resp["genres"].([]interface{}), 1)
}

func TestGenreAPI_Add(t *testing.T) {
	env := setupAPITest(t)

	w := env.doJSON(t, http.MethodPost, "/api/v1/genres", map[string]string{"name": "スープ"})
	assertStatus(t, w, http.StatusCreated)
	genre := decodeBody(t, w)["genre"].(map[string]interface{})
	assert.Equal(t, "スープ", genre["name"])

	// Missing name fails binding.
	w = env.doJSON(t, http.MethodPost, "/api/v1/genres", map[string]string{})
	assertStatus(t, w, http.StatusBadRequest)

	// Duplicates are rejected regardless of case.
	w = env.doJSON(t, http.MethodPost, "/api/v1/genres", map[string]string{"name": "スープ"})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestGenreAPI_AddAtLimit(t *testing.T) {
	env := setupAPITest(t)
	ctx := context.Background()

	for i := 0; i < service.GenreLimit; i++ {
		_, err := env.genres.Add(ctx, fmt.Sprintf("genre-%02d", i))
		require.NoError(t, err)
	}

	w := env.doJSON(t, http.MethodPost, "/api/v1/genres", map[string]string{"name": "one too many"})
	assertStatus(t, w, http.StatusConflict)
}

func TestGenreAPI_Rename(t *testing.T) {
	env := setupAPITest(t)

	created, err := env.genres.Add(context.Background(), "スープ")
	require.NoError(t, err)

	w := env.doJSON(t, http.MethodPut, "/api/v1/genres/"+created.ID.String(), map[string]string{"name": "汁物"})
	assertStatus(t, w, http.StatusOK)
	genre := decodeBody(t, w)["genre"].(map[string]interface{})
	assert.Equal(t, "汁物", genre["name"])

	w = env.doJSON(t, http.MethodPut, "/api/v1/genres/"+uuid.New().String(), map[string]string{"name": "汁物"})
	assertStatus(t, w, http.StatusNotFound)
}

func TestGenreAPI_DeleteCascadesIntoRecipes(t *testing.T) {
	env := setupAPITest(t)
	ctx := context.Background()

	created, err := env.genres.Add(ctx, "スープ")
	require.NoError(t, err)

	recipe, err := env.recipes.Create(ctx, &model.Recipe{
		Title:  "ミネストローネ",
		Genres: model.JSONBStringArray{"スープ", "メインディッシュ"},
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/v1/genres/"+created.ID.String(), nil, "")
	assertStatus(t, w, http.StatusOK)

	patched, err := env.recipes.Get(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JSONBStringArray{"メインディッシュ"}, patched.Genres)

	w = env.do(t, http.MethodDelete, "/api/v1/genres/"+created.ID.String(), nil, "")
	assertStatus(t, w, http.StatusNotFound)
}

func TestGenreAPI_Refresh(t *testing.T) {
	env := setupAPITest(t)

	_, err := env.genres.Add(context.Background(), "スープ")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/v1/genres/refresh", nil, "")
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, []string{"スープ"}, stringSlice(t, decodeBody(t, w)["genres"]))
}
