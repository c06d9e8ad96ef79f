package storage

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, a *Assets, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/static/*", a.Handler())

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEmbeddedAssets(t *testing.T) {
	a, err := NewEmbeddedAssets()
	require.NoError(t, err)

	for _, name := range []string{"logo.svg", "success.svg", "signin.css"} {
		assert.True(t, a.Exists(name), name)
	}

	rec := serve(t, a, "/static/logo.svg")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "image/svg+xml")
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestAssets_MemFs(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "success.svg", []byte("<svg>ok</svg>"), 0o644))
	a := NewAssets(memFs)

	rec := serve(t, a, "/static/success.svg")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg>ok</svg>", rec.Body.String())

	rec = serve(t, a, "/static/missing.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, a, "/static/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpen_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg>dev</svg>"), 0o644))

	a, err := Open(dir)
	require.NoError(t, err)
	assert.True(t, a.Exists("logo.svg"))
	assert.False(t, a.Exists("success.svg"))

	rec := serve(t, a, "/static/logo.svg")
	assert.Equal(t, "<svg>dev</svg>", rec.Body.String())
}
