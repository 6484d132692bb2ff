// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/labelgen"
	"github.com/label-designer/backend/internal/models"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// TemplateHandler handles label template CRUD operations
type TemplateHandler interface {
	HandleListTemplates(c echo.Context) error
	HandleGetTemplate(c echo.Context) error
	HandleCreateTemplate(c echo.Context) error
	HandleUpdateTemplate(c echo.Context) error
	HandleDeleteTemplate(c echo.Context) error
	HandleDuplicateTemplate(c echo.Context) error
}

// LabelHandler handles label generation and preview
type LabelHandler interface {
	HandleGenerateLabel(c echo.Context) error
	HandlePreviewLabel(c echo.Context) error
}

// LabelGenerator defines the rendering pipeline used by the label handlers.
// This allows mocking in tests
type LabelGenerator interface {
	Generate(req models.LabelRequest, layoutJSON string) *labelgen.Result
	Plan(layoutJSON string, data map[string]string) (*compose.Page, labelgen.Outcome)
}
