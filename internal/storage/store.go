// store.go - Template persistence interface shared by the DuckDB and in-memory stores
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/label-designer/backend/internal/models"
)

// ErrNotFound is returned when a template id does not exist.
var ErrNotFound = errors.New("template not found")

// ListOptions filters List results.
type ListOptions struct {
	Category   string
	PublicOnly bool
	Limit      int
}

// Store persists label templates.
type Store interface {
	Create(ctx context.Context, t *models.Template) (*models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context, opts ListOptions) ([]*models.Template, error)
	Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// prepareNew fills the server-assigned fields of a template being created.
func prepareNew(t *models.Template, now time.Time) *models.Template {
	out := clone(t)
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if strings.TrimSpace(out.Category) == "" {
		out.Category = models.DefaultTemplateCategory
	}
	if out.RequiredFields == nil {
		out.RequiredFields = []string{}
	}
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}

// clone returns a deep copy so callers never share slices with the store.
func clone(t *models.Template) *models.Template {
	out := *t
	out.RequiredFields = append([]string(nil), t.RequiredFields...)
	if out.RequiredFields == nil {
		out.RequiredFields = []string{}
	}
	return &out
}

func (o ListOptions) match(t *models.Template) bool {
	if o.PublicOnly && !t.IsPublic {
		return false
	}
	if o.Category != "" && !strings.EqualFold(o.Category, t.Category) {
		return false
	}
	return true
}

// utcNow is truncated to the microsecond precision of DuckDB timestamps.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
