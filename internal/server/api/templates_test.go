package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
	"github.com/TheJusticeMan/flick/testdata"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "flick-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// createStoredTemplate inserts a template directly via the store.
func createStoredTemplate(t *testing.T, s *store.Store, id, name, commandID string) *store.Template {
	t.Helper()

	template := &store.Template{
		ID:        id,
		Name:      name,
		CommandID: commandID,
		Path:      testdata.EncodedPath(gesture.Normalize(testdata.RightwardLine(), gesture.DefaultResamplePoints)),
	}
	if err := s.Templates().Create(template); err != nil {
		t.Fatalf("failed to create template: %v", err)
	}
	return template
}

func TestTemplateHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	createStoredTemplate(t, s, "tmpl-1", "swipe_right", "cmd.next")

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listTemplatesResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(response.Templates))
	}

	if response.Templates[0].ID != "tmpl-1" {
		t.Errorf("expected template ID 'tmpl-1', got %q", response.Templates[0].ID)
	}

	if response.Templates[0].Name != "swipe_right" {
		t.Errorf("expected template name 'swipe_right', got %q", response.Templates[0].Name)
	}
}

func TestTemplateHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	reqBody := createTemplateRequest{
		Name:      "swipe_right",
		CommandID: "cmd.next",
		Path:      json.RawMessage(testdata.EncodedPath(testdata.RightwardLine())),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response templateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("expected generated template ID, got empty string")
	}

	if response.Name != "swipe_right" {
		t.Errorf("expected template name 'swipe_right', got %q", response.Name)
	}

	// The stored path must be normalized: resampled to the default
	// point count and translated to start at the origin.
	stored, err := gesture.DecodePath(string(response.Path))
	if err != nil {
		t.Fatalf("failed to decode stored path: %v", err)
	}

	if len(stored) != gesture.DefaultResamplePoints {
		t.Errorf("expected %d stored points, got %d", gesture.DefaultResamplePoints, len(stored))
	}

	if stored[0].X != 0 || stored[0].Y != 0 {
		t.Errorf("expected stored path to start at origin, got (%v, %v)", stored[0].X, stored[0].Y)
	}
}

func TestTemplateHandler_Create_Validation(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing name", `{"command_id": "cmd.next", "path": [[0,0],[10,0]]}`},
		{"missing command id", `{"name": "swipe", "path": [[0,0],[10,0]]}`},
		{"missing path", `{"name": "swipe", "command_id": "cmd.next"}`},
		{"single point path", `{"name": "swipe", "command_id": "cmd.next", "path": [[5,5]]}`},
		{"zero length path", `{"name": "swipe", "command_id": "cmd.next", "path": [[5,5],[5,5]]}`},
		{"malformed path", `{"name": "swipe", "command_id": "cmd.next", "path": [[1,2,3]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/templates", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestTemplateHandler_Get(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	createStoredTemplate(t, s, "tmpl-1", "swipe_right", "cmd.next")

	req := httptest.NewRequest(http.MethodGet, "/api/templates/tmpl-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response templateResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.CommandID != "cmd.next" {
		t.Errorf("expected command id 'cmd.next', got %q", response.CommandID)
	}
}

func TestTemplateHandler_Get_NotFound(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/does-not-exist", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestTemplateHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	createStoredTemplate(t, s, "tmpl-1", "swipe_right", "cmd.next")

	body := []byte(`{"name": "swipe_east", "command_id": "cmd.forward"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/templates/tmpl-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	updated, err := s.Templates().GetByID("tmpl-1")
	if err != nil {
		t.Fatalf("failed to reload template: %v", err)
	}

	if updated.Name != "swipe_east" {
		t.Errorf("expected updated name 'swipe_east', got %q", updated.Name)
	}

	if updated.CommandID != "cmd.forward" {
		t.Errorf("expected updated command id 'cmd.forward', got %q", updated.CommandID)
	}
}

func TestTemplateHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	createStoredTemplate(t, s, "tmpl-1", "swipe_right", "cmd.next")

	req := httptest.NewRequest(http.MethodDelete, "/api/templates/tmpl-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	if _, err := s.Templates().GetByID("tmpl-1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTemplateHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewTemplateHandler(s, 0)

	req := httptest.NewRequest(http.MethodPatch, "/api/templates", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
