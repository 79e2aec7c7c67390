package api

import (
	"encoding/json"
	"net/http"

	"github.com/TheJusticeMan/flick/internal/gesture"
)

// Classifier matches a raw pointer path against the live template
// library. *app.App satisfies this interface.
type Classifier interface {
	Classify(raw gesture.Path) *gesture.Result
	HandleResult(result *gesture.Result)
}

// ClassifyHandler handles one-shot classification requests over plain
// HTTP, for clients that record a gesture themselves instead of
// streaming pointer events.
type ClassifyHandler struct {
	classifier Classifier
}

// NewClassifyHandler creates a new ClassifyHandler.
func NewClassifyHandler(c Classifier) *ClassifyHandler {
	return &ClassifyHandler{classifier: c}
}

type classifyRequest struct {
	Path json.RawMessage `json:"path"`
	// Dispatch controls whether a match also triggers the bound
	// plugin command. Defaults to false so clients can probe.
	Dispatch bool `json:"dispatch"`
}

type classifyResponse struct {
	Matched bool            `json:"matched"`
	Name    string          `json:"name,omitempty"`
	Command string          `json:"command_id,omitempty"`
	Score   float64         `json:"score,omitempty"`
	Path    json.RawMessage `json:"path,omitempty"`
}

// ServeHTTP implements the http.Handler interface.
func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	path, err := gesture.DecodePath(string(req.Path))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid path: "+err.Error())
		return
	}

	result := h.classifier.Classify(path)
	if result == nil {
		// Too short to be a gesture
		writeJSON(w, http.StatusOK, classifyResponse{Matched: false})
		return
	}

	if req.Dispatch {
		h.classifier.HandleResult(result)
	}

	response := classifyResponse{
		Matched: result.Matched,
		Score:   result.Score,
	}
	if result.Matched {
		response.Name = result.Template.Name
		response.Command = result.Template.CommandID
	}
	if encoded, err := gesture.EncodePath(result.Path); err == nil {
		response.Path = json.RawMessage(encoded)
	}

	writeJSON(w, http.StatusOK, response)
}
