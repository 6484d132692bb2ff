// handlers_templates.go - Label template CRUD handlers
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/parser"
	"github.com/label-designer/backend/internal/storage"
)

// TemplateHandlerImpl implements the TemplateHandler interface
type TemplateHandlerImpl struct {
	store storage.Store
	log   *log.Logger
}

// NewTemplateHandler creates a new template handler instance
func NewTemplateHandler(store storage.Store, logger *log.Logger) TemplateHandler {
	return &TemplateHandlerImpl{
		store: store,
		log:   logging.OrDiscard(logger),
	}
}

// HandleListTemplates lists templates, filtered by ?category=, ?public=true and ?limit=
func (h *TemplateHandlerImpl) HandleListTemplates(c echo.Context) error {
	opts := storage.ListOptions{Category: strings.TrimSpace(c.QueryParam("category"))}

	if v := c.QueryParam("public"); v != "" {
		public, err := strconv.ParseBool(v)
		if err != nil {
			return NewValidationError("public")
		}
		opts.PublicOnly = public
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return NewValidationError("limit")
		}
		opts.Limit = limit
	}

	templates, err := h.store.List(c.Request().Context(), opts)
	if err != nil {
		return NewInternalError("failed to list templates", err)
	}
	return c.JSON(http.StatusOK, templates)
}

// HandleGetTemplate returns a single template
func (h *TemplateHandlerImpl) HandleGetTemplate(c echo.Context) error {
	t, err := h.lookup(c, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// HandleCreateTemplate stores a new template after validating its layout
func (h *TemplateHandlerImpl) HandleCreateTemplate(c echo.Context) error {
	var req models.CreateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewValidationError("name")
	}
	if err := validateLayout(req.LayoutJSON); err != nil {
		return err
	}

	created, err := h.store.Create(c.Request().Context(), req.Template())
	if err != nil {
		return NewInternalError("failed to create template", err)
	}
	h.log.Infof("created template %s (%s)", created.ID, created.Name)
	return c.JSON(http.StatusCreated, created)
}

// HandleUpdateTemplate applies a partial update to a template
func (h *TemplateHandlerImpl) HandleUpdateTemplate(c echo.Context) error {
	id := c.Param("id")

	var req models.UpdateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return NewValidationError("name")
	}
	if req.LayoutJSON != nil {
		if err := validateLayout(*req.LayoutJSON); err != nil {
			return err
		}
	}

	updated, err := h.store.Update(c.Request().Context(), id, req.Patch())
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("template", id)
	}
	if err != nil {
		return NewInternalError("failed to update template", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteTemplate removes a template
func (h *TemplateHandlerImpl) HandleDeleteTemplate(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("template", id)
	}
	if err != nil {
		return NewInternalError("failed to delete template", err)
	}
	h.log.Infof("deleted template %s", id)
	return c.NoContent(http.StatusNoContent)
}

// HandleDuplicateTemplate copies a template under a new id. The body is
// optional; without a name the copy is called "<name> (Copy)".
func (h *TemplateHandlerImpl) HandleDuplicateTemplate(c echo.Context) error {
	source, err := h.lookup(c, c.Param("id"))
	if err != nil {
		return err
	}

	var req models.DuplicateTemplateRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return NewBadRequestError("invalid request body", err)
		}
	}

	dup := *source
	dup.ID = ""
	dup.Name = strings.TrimSpace(req.Name)
	if dup.Name == "" {
		dup.Name = source.Name + " (Copy)"
	}
	if req.IsPublic != nil {
		dup.IsPublic = *req.IsPublic
	}

	created, err := h.store.Create(c.Request().Context(), &dup)
	if err != nil {
		return NewInternalError("failed to duplicate template", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TemplateHandlerImpl) lookup(c echo.Context, id string) (*models.Template, error) {
	t, err := h.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NewNotFoundError("template", id)
	}
	if err != nil {
		return nil, NewInternalError("failed to load template", err)
	}
	return t, nil
}

// validateLayout rejects layout documents the parser cannot read.
// Empty layouts are allowed and render the built-in label.
func validateLayout(layoutJSON string) error {
	if err := parser.ValidateLayoutJSON(layoutJSON); err != nil {
		return NewBadRequestError("invalid layoutJson", err)
	}
	return nil
}
