// routes.go - Route registration and middleware helpers
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/config"
	"github.com/label-designer/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store     storage.Store
	Generator LabelGenerator
	Logger    *log.Logger
	Version   string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	Templates TemplateHandler
	Labels    LabelHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Store),
		Templates: NewTemplateHandler(deps.Store, deps.Logger),
		Labels:    NewLabelHandler(deps.Store, deps.Generator, deps.Logger),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Template management
	templates := apiGroup.Group("/templates")
	templates.GET("", handlers.Templates.HandleListTemplates)
	templates.POST("", handlers.Templates.HandleCreateTemplate)
	templates.GET("/:id", handlers.Templates.HandleGetTemplate)
	templates.PUT("/:id", handlers.Templates.HandleUpdateTemplate)
	templates.DELETE("/:id", handlers.Templates.HandleDeleteTemplate)
	templates.POST("/:id/duplicate", handlers.Templates.HandleDuplicateTemplate)

	// Label rendering
	labels := apiGroup.Group("/labels")
	labels.POST("/generate", handlers.Labels.HandleGenerateLabel)
	labels.POST("/preview", handlers.Labels.HandlePreviewLabel)
}

// SetupMiddleware configures error handling, logging, recovery, timeouts,
// body limits and CORS from the server configuration
func SetupMiddleware(e *echo.Echo, cfg *config.AppConfig) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging if disabled in config
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      time.Duration(cfg.Server.ReadTimeout) * time.Second,
		ErrorMessage: "Request timeout - rendering took too long",
	}))

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			// PDFs are already compressed
			return strings.HasPrefix(c.Request().URL.Path, "/api/labels/")
		},
	}))

	if cfg.Server.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  origins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			ExposeHeaders: []string{echo.HeaderContentDisposition, HeaderLabelOutcome},
		}))
	}
}
