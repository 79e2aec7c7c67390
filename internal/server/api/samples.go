package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/TheJusticeMan/flick/internal/store"
)

// SamplesHandler handles HTTP requests for recorded gesture samples and
// training. Routes are nested under template resources:
//
//	GET  /api/templates/{id}/samples  - list recorded samples
//	POST /api/templates/{id}/samples  - replace the recorded sample set
//	POST /api/templates/{id}/train    - rebuild the template path from samples
type SamplesHandler struct {
	store          *store.Store
	resamplePoints int
}

// NewSamplesHandler creates a new SamplesHandler with the given store.
func NewSamplesHandler(s *store.Store, resamplePoints int) *SamplesHandler {
	if resamplePoints <= 0 {
		resamplePoints = gesture.DefaultResamplePoints
	}
	return &SamplesHandler{store: s, resamplePoints: resamplePoints}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates/")

	switch {
	case strings.HasSuffix(path, "/samples"):
		id := strings.TrimSuffix(path, "/samples")
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, id)
		case http.MethodPost:
			h.record(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case strings.HasSuffix(path, "/train"):
		id := strings.TrimSuffix(path, "/train")
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.train(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

type recordSamplesRequest struct {
	Samples []json.RawMessage `json:"samples"`
}

type sampleResponse struct {
	ID          int64           `json:"id"`
	SampleIndex int             `json:"sample_index"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   string          `json:"created_at"`
}

type listSamplesResponse struct {
	TemplateID string           `json:"template_id"`
	Samples    []sampleResponse `json:"samples"`
}

type trainResponse struct {
	Template    templateResponse `json:"template"`
	SampleCount int              `json:"sample_count"`
}

// templateExists loads the owning template or writes a 404/500 response.
func (h *SamplesHandler) templateExists(w http.ResponseWriter, id string) (*store.Template, bool) {
	template, err := h.store.Templates().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to get template")
		return nil, false
	}
	return template, true
}

// list handles GET /api/templates/{id}/samples.
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.templateExists(w, id); !ok {
		return
	}

	samples, err := h.store.Samples().GetByTemplateID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		TemplateID: id,
		Samples:    make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:          s.ID,
			SampleIndex: s.SampleIndex,
			Data:        s.Data,
			CreatedAt:   s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// record handles POST /api/templates/{id}/samples. The submitted set
// replaces any samples recorded earlier for the template.
func (h *SamplesHandler) record(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := h.templateExists(w, id); !ok {
		return
	}

	var req recordSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	// Reject malformed samples before touching the stored set
	for i, raw := range req.Samples {
		var sample gesture.RecordedSample
		if err := json.Unmarshal(raw, &sample); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid sample at index "+strconv.Itoa(i))
			return
		}
		if _, err := gesture.DecodePath(string(sample.Path)); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid sample path at index "+strconv.Itoa(i))
			return
		}
	}

	if err := h.store.Samples().Create(id, req.Samples); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record samples")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// train handles POST /api/templates/{id}/train. It averages the
// recorded samples into a new template path and persists it.
func (h *SamplesHandler) train(w http.ResponseWriter, r *http.Request, id string) {
	template, ok := h.templateExists(w, id)
	if !ok {
		return
	}

	samples, err := h.store.Samples().GetByTemplateID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load samples")
		return
	}
	if len(samples) == 0 {
		writeError(w, http.StatusBadRequest, "Template has no recorded samples")
		return
	}

	raw := make([]json.RawMessage, 0, len(samples))
	for _, s := range samples {
		raw = append(raw, s.Data)
	}

	trained, err := gesture.NewTrainer().Train(raw, h.resamplePoints)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Training failed: "+err.Error())
		return
	}

	encoded, err := gesture.EncodePath(trained)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode trained path")
		return
	}

	template.Path = encoded
	if err := h.store.Templates().Update(template); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	writeJSON(w, http.StatusOK, trainResponse{
		Template:    toResponse(template),
		SampleCount: len(samples),
	})
}
