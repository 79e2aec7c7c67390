// Package api provides HTTP API handlers for the Flick gesture daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
)

// TemplateHandler handles HTTP requests for gesture template resources.
type TemplateHandler struct {
	store          *store.Store
	resamplePoints int
}

// NewTemplateHandler creates a new TemplateHandler with the given store.
// resamplePoints controls the stored point count; zero uses the engine
// default.
func NewTemplateHandler(s *store.Store, resamplePoints int) *TemplateHandler {
	if resamplePoints <= 0 {
		resamplePoints = gesture.DefaultResamplePoints
	}
	return &TemplateHandler{store: s, resamplePoints: resamplePoints}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/templates or /api/templates/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/templates")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/templates
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/templates/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createTemplateRequest struct {
	Name      string          `json:"name"`
	CommandID string          `json:"command_id"`
	Path      json.RawMessage `json:"path"`
}

type updateTemplateRequest struct {
	Name      string          `json:"name"`
	CommandID string          `json:"command_id"`
	Path      json.RawMessage `json:"path"`
}

type templateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CommandID string          `json:"command_id"`
	Path      json.RawMessage `json:"path"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Template to a templateResponse.
func toResponse(t *store.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		CommandID: t.CommandID,
		Path:      json.RawMessage(t.Path),
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// normalizeEncoded decodes a submitted [x, y] pair path, validates it
// as a gesture shape, and returns the normalized encoding to store.
func normalizeEncoded(raw json.RawMessage, resamplePoints int) (string, error) {
	path, err := gesture.DecodePath(string(raw))
	if err != nil {
		return "", err
	}
	if len(path) < 2 || path.Length() == 0 {
		return "", errors.New("path must contain at least 2 distinct points")
	}

	normalized := gesture.Normalize(path, resamplePoints)
	return gesture.EncodePath(normalized)
}

// list handles GET /api/templates and returns all templates.
func (h *TemplateHandler) list(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.Templates().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}

	response := listTemplatesResponse{
		Templates: make([]templateResponse, 0, len(templates)),
	}

	for _, t := range templates {
		response.Templates = append(response.Templates, toResponse(t))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/templates/{id} and returns a single template.
func (h *TemplateHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(template))
}

// create handles POST /api/templates. This is the persistence step of
// the assignment flow: the submitted path is normalized before storage
// so stored templates are always directly comparable.
func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.CommandID == "" {
		writeError(w, http.StatusBadRequest, "Command id is required")
		return
	}
	if len(req.Path) == 0 {
		writeError(w, http.StatusBadRequest, "Path is required")
		return
	}

	encoded, err := normalizeEncoded(req.Path, h.resamplePoints)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid path: "+err.Error())
		return
	}

	template := &store.Template{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CommandID: req.CommandID,
		Path:      encoded,
	}

	if err := h.store.Templates().Create(template); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(template))
}

// update handles PUT /api/templates/{id} and updates an existing template.
func (h *TemplateHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	// First, get the existing template
	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return
	}

	var req updateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.Name != "" {
		template.Name = req.Name
	}
	if req.CommandID != "" {
		template.CommandID = req.CommandID
	}
	if len(req.Path) > 0 {
		encoded, err := normalizeEncoded(req.Path, h.resamplePoints)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid path: "+err.Error())
			return
		}
		template.Path = encoded
	}

	if err := h.store.Templates().Update(template); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(template))
}

// delete handles DELETE /api/templates/{id} and removes a template.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Templates().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
