package models

import "time"

// DefaultTemplateCategory is assigned when a template is created without one.
const DefaultTemplateCategory = "Product"

// Template is a stored label template.
type Template struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Description    string    `json:"description" yaml:"description"`
	LayoutJSON     string    `json:"layoutJson" yaml:"layoutJson"`
	Width          float64   `json:"width" yaml:"width"`   // points
	Height         float64   `json:"height" yaml:"height"` // points
	RequiredFields []string  `json:"requiredFields" yaml:"requiredFields"`
	PreviewImage   string    `json:"previewImage" yaml:"previewImage"`
	Category       string    `json:"category" yaml:"category"`
	IsPublic       bool      `json:"isPublic" yaml:"isPublic"`
	IsActive       bool      `json:"isActive" yaml:"isActive"`
	CreatedAt      time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"-"`
}

// TemplatePatch carries the fields of an update; nil means "unchanged".
type TemplatePatch struct {
	Name           *string
	Description    *string
	LayoutJSON     *string
	Width          *float64
	Height         *float64
	RequiredFields []string
	PreviewImage   *string
	IsPublic       *bool
}

// Apply copies the set fields of the patch onto t.
func (p TemplatePatch) Apply(t *Template) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.LayoutJSON != nil {
		t.LayoutJSON = *p.LayoutJSON
	}
	if p.Width != nil {
		t.Width = *p.Width
	}
	if p.Height != nil {
		t.Height = *p.Height
	}
	if p.RequiredFields != nil {
		t.RequiredFields = p.RequiredFields
	}
	if p.PreviewImage != nil {
		t.PreviewImage = *p.PreviewImage
	}
	if p.IsPublic != nil {
		t.IsPublic = *p.IsPublic
	}
}
