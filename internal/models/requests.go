package models

// LabelRequest asks for a label rendered from a stored template.
// Data is the substitution record; keys are case-sensitive.
type LabelRequest struct {
	TemplateID string            `json:"templateId"`
	Data       map[string]string `json:"data"`
}

// PreviewRequest renders either a stored template or an inline layout.
// LayoutJSON, when non-empty, wins over the stored template's layout.
type PreviewRequest struct {
	TemplateID string            `json:"templateId"`
	LayoutJSON string            `json:"layoutJson"`
	Data       map[string]string `json:"data"`
	Format     string            `json:"format"` // "pdf", "json" or "msgpack"
}

// CreateTemplateRequest is the body of a template create call.
type CreateTemplateRequest struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	LayoutJSON     string   `json:"layoutJson" yaml:"layoutJson"`
	Width          float64  `json:"width" yaml:"width"`
	Height         float64  `json:"height" yaml:"height"`
	RequiredFields []string `json:"requiredFields" yaml:"requiredFields"`
	Category       string   `json:"category" yaml:"category"`
	IsPublic       *bool    `json:"isPublic" yaml:"isPublic"`
	PreviewImage   string   `json:"previewImage" yaml:"previewImage"`
}

// Template converts the request into a new record with documented defaults.
func (r CreateTemplateRequest) Template() *Template {
	t := &Template{
		Name:           r.Name,
		Description:    r.Description,
		LayoutJSON:     r.LayoutJSON,
		Width:          r.Width,
		Height:         r.Height,
		RequiredFields: r.RequiredFields,
		Category:       r.Category,
		IsPublic:       true,
		IsActive:       true,
		PreviewImage:   r.PreviewImage,
	}
	if t.Width <= 0 {
		t.Width = 300
	}
	if t.Height <= 0 {
		t.Height = 200
	}
	if t.Category == "" {
		t.Category = DefaultTemplateCategory
	}
	if r.IsPublic != nil {
		t.IsPublic = *r.IsPublic
	}
	if t.RequiredFields == nil {
		t.RequiredFields = []string{}
	}
	return t
}

// UpdateTemplateRequest is the body of a template update call.
type UpdateTemplateRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	LayoutJSON     *string  `json:"layoutJson"`
	Width          *float64 `json:"width"`
	Height         *float64 `json:"height"`
	RequiredFields []string `json:"requiredFields"`
	PreviewImage   *string  `json:"previewImage"`
	IsPublic       *bool    `json:"isPublic"`
}

// Patch converts the request into a TemplatePatch.
func (r UpdateTemplateRequest) Patch() TemplatePatch {
	return TemplatePatch{
		Name:           r.Name,
		Description:    r.Description,
		LayoutJSON:     r.LayoutJSON,
		Width:          r.Width,
		Height:         r.Height,
		RequiredFields: r.RequiredFields,
		PreviewImage:   r.PreviewImage,
		IsPublic:       r.IsPublic,
	}
}

// DuplicateTemplateRequest is the body of a template duplicate call.
type DuplicateTemplateRequest struct {
	Name     string `json:"name"`
	IsPublic *bool  `json:"isPublic"`
}
