// handlers_labels.go - Label generation and preview handlers
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/label-designer/backend/internal/compose"
	"github.com/label-designer/backend/internal/labelgen"
	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/storage"
)

// HeaderLabelOutcome reports which pipeline state produced a PDF.
const HeaderLabelOutcome = "X-Label-Outcome"

// Preview formats
const (
	FormatPDF     = "pdf"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// LabelHandlerImpl implements the LabelHandler interface
type LabelHandlerImpl struct {
	store     storage.Store
	generator LabelGenerator
	log       *log.Logger
}

// NewLabelHandler creates a new label handler instance
func NewLabelHandler(store storage.Store, generator LabelGenerator, logger *log.Logger) LabelHandler {
	return &LabelHandlerImpl{
		store:     store,
		generator: generator,
		log:       logging.OrDiscard(logger),
	}
}

// planResponse is the body of json and msgpack previews.
type planResponse struct {
	Outcome labelgen.Outcome `json:"outcome" msgpack:"outcome"`
	Page    *compose.Page    `json:"page" msgpack:"page"`
}

// HandleGenerateLabel renders a stored template with the request data and
// returns the PDF as an attachment. Required fields are checked first.
func (h *LabelHandlerImpl) HandleGenerateLabel(c echo.Context) error {
	var req models.LabelRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return NewValidationError("templateId")
	}

	t, err := h.template(c, req.TemplateID)
	if err != nil {
		return err
	}

	if err := labelgen.CheckRequired(t.RequiredFields, req.Data); err != nil {
		var missing *labelgen.MissingFieldsError
		if errors.As(err, &missing) {
			return NewMissingFieldsError(missing.Fields)
		}
		return NewBadRequestError("invalid label data", err)
	}

	res := h.generator.Generate(req, t.LayoutJSON)
	h.log.Infof("generated %s for template %s", res, t.ID)
	return sendPDF(c, res, "attachment")
}

// HandlePreviewLabel renders an inline layout or a stored template without
// checking required fields. format selects a PDF or the composed draw list.
func (h *LabelHandlerImpl) HandlePreviewLabel(c echo.Context) error {
	var req models.PreviewRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatJSON && format != FormatMsgpack {
		return NewValidationError("format")
	}

	layoutJSON := req.LayoutJSON
	if strings.TrimSpace(layoutJSON) == "" && req.TemplateID != "" {
		t, err := h.template(c, req.TemplateID)
		if err != nil {
			return err
		}
		layoutJSON = t.LayoutJSON
	}

	switch format {
	case FormatJSON:
		page, outcome := h.generator.Plan(layoutJSON, req.Data)
		return c.JSON(http.StatusOK, planResponse{Outcome: outcome, Page: page})
	case FormatMsgpack:
		page, outcome := h.generator.Plan(layoutJSON, req.Data)
		data, err := msgpack.Marshal(planResponse{Outcome: outcome, Page: page})
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		return c.Blob(http.StatusOK, "application/msgpack", data)
	default:
		res := h.generator.Generate(models.LabelRequest{TemplateID: req.TemplateID, Data: req.Data}, layoutJSON)
		return sendPDF(c, res, "inline")
	}
}

func (h *LabelHandlerImpl) template(c echo.Context, id string) (*models.Template, error) {
	t, err := h.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, NewNotFoundError("template", id)
	}
	if err != nil {
		return nil, NewInternalError("failed to load template", err)
	}
	return t, nil
}

func sendPDF(c echo.Context, res *labelgen.Result, disposition string) error {
	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, res.Filename))
	header.Set(HeaderLabelOutcome, string(res.Outcome))
	return c.Blob(http.StatusOK, "application/pdf", res.PDF)
}
