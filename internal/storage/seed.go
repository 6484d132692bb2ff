// seed.go - Loads bundled default templates into an empty store
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/label-designer/backend/internal/logging"
	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/parser"
)

// SeedDefaults loads every *.yaml template definition in dir into store when
// the store is empty. Files with an invalid layout are skipped. It returns
// the number of templates created.
func SeedDefaults(ctx context.Context, store Store, dir string, logger *log.Logger) (int, error) {
	logger = logging.OrDiscard(logger)
	if dir == "" {
		return 0, nil
	}

	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("listing default templates: %w", err)
	}
	sort.Strings(files)

	created := 0
	for _, path := range files {
		t, err := LoadTemplateFile(path)
		if err != nil {
			logger.Warnf("skipping default template %s: %v", filepath.Base(path), err)
			continue
		}
		if _, err := store.Create(ctx, t); err != nil {
			return created, fmt.Errorf("seeding %s: %w", filepath.Base(path), err)
		}
		created++
	}
	if created > 0 {
		logger.Infof("seeded %d default templates from %s", created, dir)
	}
	return created, nil
}

// LoadTemplateFile reads one YAML template definition and validates its
// layout.
func LoadTemplateFile(path string) (*models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	t := &models.Template{IsPublic: true, IsActive: true}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing template file: %w", err)
	}
	if t.Name == "" {
		return nil, fmt.Errorf("template has no name")
	}

	layout, err := parser.ParseLayoutString(t.LayoutJSON)
	if err != nil {
		return nil, err
	}
	if t.Width <= 0 {
		t.Width = layout.Width
	}
	if t.Height <= 0 {
		t.Height = layout.Height
	}
	return t, nil
}
