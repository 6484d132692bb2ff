package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":    {Data: []byte("<html>designer</html>")},
		"assets/app.js": {Data: []byte("console.log('app')")},
	}
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHasFrontend(t *testing.T) {
	assert.True(t, HasFrontend(testFS()))
	assert.False(t, HasFrontend(fstest.MapFS{"README.txt": {Data: []byte("x")}}))
}

func TestEmbeddedFileSystem(t *testing.T) {
	fsys, err := FileSystem()
	assert.NoError(t, err)
	_, err = fs.Stat(fsys, "README.txt")
	assert.NoError(t, err)
}

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	e.GET("/api/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	RegisterStaticRoutes(e, testFS())

	rec := get(e, "/assets/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")

	rec = get(e, "/templates/42/edit")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "designer")

	rec = get(e, "/api/health")
	assert.Equal(t, "ok", rec.Body.String())

	rec = get(e, "/api/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
