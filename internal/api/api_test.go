package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/api"
	"github.com/recipe-notebook/backend/internal/router"
	"github.com/recipe-notebook/backend/internal/service"
	"github.com/recipe-notebook/backend/internal/testdb"
)

// fakeUploader stands in for object storage: it mints deterministic URLs
// and fails uploads whose file name is marked.
type fakeUploader struct {
	failNames map[string]bool
	uploaded  []string
}

func (f *fakeUploader) Upload(_ context.Context, name string, _ []byte) (string, error) {
	if f.failNames[name] {
		return "", errors.New("upload rejected")
	}
	url := "https://img.test/" + name
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	uploader *fakeUploader
	token    string
	userID   string

	recipes   *service.RecipeService
	genres    *service.GenreService
	favorites *service.FavoriteService
}

func setupAPITest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.Open(t)
	recipes := service.NewRecipeService(db)
	genres := service.NewGenreService(db, nil, recipes)
	favorites := service.NewFavoriteService(db)
	identity := service.NewIdentityService("test-token-secret")
	uploader := &fakeUploader{failNames: map[string]bool{}}

	engine := router.SetupRouter(router.Handlers{
		Health:   api.NewHealthHandler(db),
		Identity: api.NewIdentityHandler(identity),
		Recipe:   api.NewRecipeHandler(recipes, favorites, genres, uploader),
		Genre:    api.NewGenreHandler(genres),
		Favorite: api.NewFavoriteHandler(recipes, favorites),
	}, identity, nil)

	issued, err := identity.Issue()
	require.NoError(t, err)

	return &testEnv{
		router:    engine,
		db:        db,
		uploader:  uploader,
		token:     issued.Token,
		userID:    issued.UserID,
		recipes:   recipes,
		genres:    genres,
		favorites: favorites,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return e.do(t, method, path, bytes.NewReader(raw), "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// formFile is one attachment of a multipart recipe form.
type formFile struct {
	name string
	data []byte
}

func multipartBody(t *testing.T, fields map[string][]string, files []formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func stringSlice(t *testing.T, v interface{}) []string {
	t.Helper()
	raw, ok := v.([]interface{})
	require.True(t, ok, "expected array, got %T", v)
	out := make([]string, len(raw))
	for i, item := range raw {
		out[i] = fmt.Sprintf("%v", item)
	}
	return out
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
