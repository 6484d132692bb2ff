// Package web serves the label designer frontend from files embedded in
// the binary.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed dist/*
var staticFiles embed.FS

// FileSystem returns the embedded frontend with dist as root.
func FileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "dist")
}

// HasFrontend reports whether fsys holds a built frontend.
func HasFrontend(fsys fs.FS) bool {
	info, err := fs.Stat(fsys, "index.html")
	return err == nil && !info.IsDir()
}

// RegisterStaticRoutes serves fsys for every path outside /api. Unknown
// paths get index.html so the designer's client-side routes resolve.
// API routes must be registered first.
func RegisterStaticRoutes(e *echo.Echo, fsys fs.FS) {
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:       ".",
		Index:      "index.html",
		HTML5:      true,
		Filesystem: http.FS(fsys),
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api")
		},
	}))
}
