// memory.go - In-memory template store used when persistence is disabled
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/label-designer/backend/internal/models"
)

// MemoryStore implements Store with a map guarded by a RWMutex.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]*models.Template
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]*models.Template),
		now:       utcNow,
	}
}

// Create stores a new template and returns the stored copy.
func (s *MemoryStore) Create(ctx context.Context, t *models.Template) (*models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := prepareNew(t, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.templates[stored.ID]; exists {
		return nil, fmt.Errorf("template %s already exists", stored.ID)
	}
	s.templates[stored.ID] = stored
	return clone(stored), nil
}

// Get retrieves a template by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(t), nil
}

// List returns matching templates, newest first.
func (s *MemoryStore) List(ctx context.Context, opts ListOptions) ([]*models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Template, 0, len(s.templates))
	for _, t := range s.templates {
		if opts.match(t) {
			result = append(result, clone(t))
		}
	}
	sortTemplates(result)

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

// Update applies patch to a template.
func (s *MemoryStore) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := clone(t)
	patch.Apply(updated)
	updated.UpdatedAt = s.now()
	s.templates[id] = updated
	return clone(updated), nil
}

// Delete removes a template.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return ErrNotFound
	}
	delete(s.templates, id)
	return nil
}

// Count returns the number of stored templates.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// sortTemplates orders by creation time descending, then by ID.
func sortTemplates(ts []*models.Template) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.After(ts[j].CreatedAt)
		}
		return ts[i].ID < ts[j].ID
	})
}
