// mock_storage.go - Mock template store for testing
package testutil

import (
	"context"
	"sync"

	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/storage"
)

// MockStore implements storage.Store on top of an in-memory store and lets
// tests inject failures per operation.
type MockStore struct {
	*storage.MemoryStore

	mu        sync.Mutex
	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
	DeleteErr error
	Calls     []string
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: storage.NewMemoryStore()}
}

// MustCreate stores t and panics on failure.
func (m *MockStore) MustCreate(t *models.Template) *models.Template {
	created, err := m.MemoryStore.Create(context.Background(), t)
	if err != nil {
		panic(err)
	}
	return created
}

func (m *MockStore) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockStore) Create(ctx context.Context, t *models.Template) (*models.Template, error) {
	m.record("Create")
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.MemoryStore.Create(ctx, t)
}

func (m *MockStore) Get(ctx context.Context, id string) (*models.Template, error) {
	m.record("Get")
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.MemoryStore.Get(ctx, id)
}

func (m *MockStore) List(ctx context.Context, opts storage.ListOptions) ([]*models.Template, error) {
	m.record("List")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.MemoryStore.List(ctx, opts)
}

func (m *MockStore) Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error) {
	m.record("Update")
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	return m.MemoryStore.Update(ctx, id, patch)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	m.record("Delete")
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.MemoryStore.Delete(ctx, id)
}

// Ensure MockStore implements storage.Store
var _ storage.Store = (*MockStore)(nil)
