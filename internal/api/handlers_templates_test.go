// handlers_templates_test.go - Tests for template handlers
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/label-designer/backend/internal/models"
	"github.com/label-designer/backend/internal/testutil"
)

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func assertAPIError(t *testing.T, err error, status int, code string) *APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected APIError, got %T", err)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func seedTemplate(store *testutil.MockStore, name string) *models.Template {
	return store.MustCreate(&models.Template{
		Name:           name,
		LayoutJSON:     `{"width":300,"height":200,"elements":[]}`,
		Width:          300,
		Height:         200,
		RequiredFields: []string{"ProductName"},
		Category:       "Product",
		IsPublic:       true,
		IsActive:       true,
	})
}

func TestTemplateHandler_HandleCreateTemplate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantErr    bool
		errCode    string
	}{
		{
			name:       "valid template",
			body:       `{"name":"Shelf","layoutJson":"{\"width\":200,\"height\":100,\"elements\":[]}","requiredFields":["Price"]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty layout allowed",
			body:       `{"name":"Blank"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:    "missing name",
			body:    `{"layoutJson":"{}"}`,
			wantErr: true,
			errCode: "VALIDATION_ERROR",
		},
		{
			name:    "malformed layout",
			body:    `{"name":"Broken","layoutJson":"{\"elements\": ["}`,
			wantErr: true,
			errCode: "BAD_REQUEST",
		},
		{
			name:    "malformed body",
			body:    `{"name":`,
			wantErr: true,
			errCode: "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockStore()
			handler := NewTemplateHandler(store, nil)
			c, rec := newJSONContext(http.MethodPost, "/api/templates", tt.body)

			err := handler.HandleCreateTemplate(c)
			if tt.wantErr {
				assertAPIError(t, err, http.StatusBadRequest, tt.errCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var created models.Template
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, models.DefaultTemplateCategory, created.Category)
			assert.True(t, created.IsPublic)
			assert.NotNil(t, created.RequiredFields)
		})
	}
}

func TestTemplateHandler_HandleGetTemplate(t *testing.T) {
	store := testutil.NewMockStore()
	existing := seedTemplate(store, "Basic")
	handler := NewTemplateHandler(store, nil)

	c, rec := newJSONContext(http.MethodGet, "/api/templates/"+existing.ID, "")
	require.NoError(t, handler.HandleGetTemplate(withID(c, existing.ID)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Basic"`)

	c, _ = newJSONContext(http.MethodGet, "/api/templates/missing", "")
	assertAPIError(t, handler.HandleGetTemplate(withID(c, "missing")), http.StatusNotFound, "NOT_FOUND")

	store.GetErr = errors.New("disk on fire")
	c, _ = newJSONContext(http.MethodGet, "/api/templates/"+existing.ID, "")
	assertAPIError(t, handler.HandleGetTemplate(withID(c, existing.ID)), http.StatusInternalServerError, "INTERNAL_ERROR")
}

func TestTemplateHandler_HandleListTemplates(t *testing.T) {
	store := testutil.NewMockStore()
	seedTemplate(store, "A")
	private := seedTemplate(store, "B")
	isPublic := false
	_, err := store.MemoryStore.Update(context.Background(), private.ID, models.TemplatePatch{IsPublic: &isPublic})
	require.NoError(t, err)
	handler := NewTemplateHandler(store, nil)

	tests := []struct {
		name      string
		target    string
		wantCount int
		errCode   string
	}{
		{"all", "/api/templates", 2, ""},
		{"public only", "/api/templates?public=true", 1, ""},
		{"category", "/api/templates?category=product", 2, ""},
		{"unknown category", "/api/templates?category=Shelf", 0, ""},
		{"limit", "/api/templates?limit=1", 1, ""},
		{"bad limit", "/api/templates?limit=-2", 0, "VALIDATION_ERROR"},
		{"bad public", "/api/templates?public=maybe", 0, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, tt.target, "")
			err := handler.HandleListTemplates(c)
			if tt.errCode != "" {
				assertAPIError(t, err, http.StatusBadRequest, tt.errCode)
				return
			}
			require.NoError(t, err)

			var list []models.Template
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
			assert.Len(t, list, tt.wantCount)
		})
	}
}

func TestTemplateHandler_HandleUpdateTemplate(t *testing.T) {
	store := testutil.NewMockStore()
	existing := seedTemplate(store, "Basic")
	handler := NewTemplateHandler(store, nil)

	c, rec := newJSONContext(http.MethodPut, "/", `{"name":"Renamed","requiredFields":["Code"]}`)
	require.NoError(t, handler.HandleUpdateTemplate(withID(c, existing.ID)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, []string{"Code"}, updated.RequiredFields)
	assert.Equal(t, existing.LayoutJSON, updated.LayoutJSON)

	c, _ = newJSONContext(http.MethodPut, "/", `{"layoutJson":"not json"}`)
	assertAPIError(t, handler.HandleUpdateTemplate(withID(c, existing.ID)), http.StatusBadRequest, "BAD_REQUEST")

	c, _ = newJSONContext(http.MethodPut, "/", `{"name":"  "}`)
	assertAPIError(t, handler.HandleUpdateTemplate(withID(c, existing.ID)), http.StatusBadRequest, "VALIDATION_ERROR")

	c, _ = newJSONContext(http.MethodPut, "/", `{"name":"X"}`)
	assertAPIError(t, handler.HandleUpdateTemplate(withID(c, "missing")), http.StatusNotFound, "NOT_FOUND")
}

func TestTemplateHandler_HandleDeleteTemplate(t *testing.T) {
	store := testutil.NewMockStore()
	existing := seedTemplate(store, "Basic")
	handler := NewTemplateHandler(store, nil)

	c, rec := newJSONContext(http.MethodDelete, "/", "")
	require.NoError(t, handler.HandleDeleteTemplate(withID(c, existing.ID)))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, _ = newJSONContext(http.MethodDelete, "/", "")
	assertAPIError(t, handler.HandleDeleteTemplate(withID(c, existing.ID)), http.StatusNotFound, "NOT_FOUND")
}

func TestTemplateHandler_HandleDuplicateTemplate(t *testing.T) {
	store := testutil.NewMockStore()
	existing := seedTemplate(store, "Basic")
	handler := NewTemplateHandler(store, nil)

	t.Run("default name", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodPost, "/", "")
		require.NoError(t, handler.HandleDuplicateTemplate(withID(c, existing.ID)))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var dup models.Template
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
		assert.NotEqual(t, existing.ID, dup.ID)
		assert.Equal(t, "Basic (Copy)", dup.Name)
		assert.Equal(t, existing.LayoutJSON, dup.LayoutJSON)
		assert.Equal(t, existing.RequiredFields, dup.RequiredFields)
	})

	t.Run("custom name and visibility", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodPost, "/", `{"name":"Mine","isPublic":false}`)
		require.NoError(t, handler.HandleDuplicateTemplate(withID(c, existing.ID)))

		var dup models.Template
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dup))
		assert.Equal(t, "Mine", dup.Name)
		assert.False(t, dup.IsPublic)
	})

	t.Run("unknown source", func(t *testing.T) {
		c, _ := newJSONContext(http.MethodPost, "/", "")
		assertAPIError(t, handler.HandleDuplicateTemplate(withID(c, "missing")), http.StatusNotFound, "NOT_FOUND")
	})
}
