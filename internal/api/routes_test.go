// routes_test.go - End-to-end tests through the registered routes
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/label-designer/backend/internal/config"
	"github.com/label-designer/backend/internal/testutil"
)

func newTestServer(t *testing.T) (*echo.Echo, *testutil.MockStore) {
	t.Helper()
	store := testutil.NewMockStore()
	cfg := config.DefaultConfig()
	cfg.Advanced.EnableRequestLogging = false

	e := echo.New()
	SetupMiddleware(e, cfg)
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Store:     store,
		Generator: newTestGenerator(),
		Version:   "test",
	}))
	return e, store
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_TemplateLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodPost, "/api/templates", `{"name":"Tag","layoutJson":`+jsonString(productLayout)+`,"requiredFields":["ProductName"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = serve(e, http.MethodPost, "/api/labels/generate", `{"templateId":"`+created.ID+`","data":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"MISSING_FIELDS"`)
	assert.Contains(t, rec.Body.String(), `"missing":["ProductName"]`)

	rec = serve(e, http.MethodPost, "/api/labels/generate", `{"templateId":"`+created.ID+`","data":{"ProductName":"Tea"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))

	rec = serve(e, http.MethodPost, "/api/templates/"+created.ID+"/duplicate", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(e, http.MethodGet, "/api/templates", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rec = serve(e, http.MethodDelete, "/api/templates/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(e, http.MethodGet, "/api/templates/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}

func TestRoutes_Health(t *testing.T) {
	e, store := newTestServer(t)

	rec := serve(e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"templates":0`)

	seedTemplate(store, "One")
	rec = serve(e, http.MethodGet, "/api/health", "")
	assert.Contains(t, rec.Body.String(), `"templates":1`)
}

func TestRoutes_UnknownRoute(t *testing.T) {
	e, _ := newTestServer(t)

	rec := serve(e, http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HTTP_ERROR"`)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"api error", NewMissingFieldsError([]string{"A", "B"}), http.StatusBadRequest, "MISSING_FIELDS"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(http.MethodGet, "/", "")
			ErrorHandler(tt.err, c)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
