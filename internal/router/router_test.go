package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/filmes-api/internal/database/dbtest"
	"github.com/iliyamo/filmes-api/internal/handler"
	"github.com/iliyamo/filmes-api/internal/repository"
	"github.com/iliyamo/filmes-api/internal/utils"
)

func newServer(t *testing.T, secret string) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e)
	h := handler.NewMovieHandler(repository.NewMovieRepo(dbtest.Open(t)), nil, 0)
	RegisterMovies(e, h, secret)
	return e
}

func send(e *echo.Echo, method, target, body, token string) int {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

const movie = `{"title":"Matrix","genre":"Sci-Fi","duration":136}`

func TestOpenRoutes(t *testing.T) {
	e := newServer(t, "")
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/healthz", "", ""))
	assert.Equal(t, http.StatusCreated, send(e, http.MethodPost, "/filme", movie, ""))
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/filme/1", "", ""))
	assert.Equal(t, http.StatusNoContent, send(e, http.MethodDelete, "/filme/1", "", ""))
}

func TestGuardedWrites(t *testing.T) {
	e := newServer(t, "s3cret")

	editor, err := utils.NewAccessToken("s3cret", "bob", "EDITOR", 5)
	require.NoError(t, err)
	viewer, err := utils.NewAccessToken("s3cret", "eve", "VIEWER", 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, send(e, http.MethodPost, "/filme", movie, ""))
	assert.Equal(t, http.StatusForbidden, send(e, http.MethodPost, "/filme", movie, viewer.Token))
	assert.Equal(t, http.StatusCreated, send(e, http.MethodPost, "/filme", movie, editor.Token))

	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/filme", "", ""))
	assert.Equal(t, http.StatusOK, send(e, http.MethodGet, "/filme/1", "", ""))
	assert.Equal(t, http.StatusUnauthorized, send(e, http.MethodPut, "/filme/1", movie, ""))
	assert.Equal(t, http.StatusUnauthorized, send(e, http.MethodPatch, "/filme/1", `[]`, ""))
	assert.Equal(t, http.StatusUnauthorized, send(e, http.MethodDelete, "/filme/1", "", ""))
	assert.Equal(t, http.StatusNoContent, send(e, http.MethodDelete, "/filme/1", "", editor.Token))
}
