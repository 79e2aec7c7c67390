package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/TheJusticeMan/flick/internal/app"
	"github.com/TheJusticeMan/flick/internal/gesture"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// pointerEvent is one raw input event streamed by a client.
type pointerEvent struct {
	Type string  `json:"type"` // "down", "move" or "up"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// feedbackMessage carries the dampened drag offset for live visual
// feedback on the anchor.
type feedbackMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// matchMessage reports a successful classification.
type matchMessage struct {
	Type       string  `json:"type"`
	TemplateID string  `json:"template_id"`
	Name       string  `json:"name"`
	CommandID  string  `json:"command_id"`
	Score      float64 `json:"score"`
}

// unmatchedMessage hands the normalized path back to the client so it
// can offer the assignment flow.
type unmatchedMessage struct {
	Type string          `json:"type"`
	Path json.RawMessage `json:"path"`
}

// PointerHandler upgrades pointer stream connections. Each connection
// owns one gesture engine, registered under the client's anchor id for
// the lifetime of the connection.
type PointerHandler struct {
	app *app.App
}

// NewPointerHandler creates a PointerHandler over the given app.
func NewPointerHandler(a *app.App) *PointerHandler {
	return &PointerHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests on /api/pointer.
// The optional ?anchor= query parameter names the anchor element; a
// connection without one gets a generated id.
func (h *PointerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	anchorID := r.URL.Query().Get("anchor")
	if anchorID == "" {
		anchorID = uuid.New().String()
	}

	// Feedback fires synchronously inside PointerMove, so every write
	// to the connection happens on this read goroutine.
	engine := h.app.NewEngine(func(offset gesture.Point) {
		msg := feedbackMessage{Type: "feedback", X: offset.X, Y: offset.Y}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("websocket feedback write error: %v", err)
		}
	})

	h.app.Registry().Add(anchorID, engine)
	defer h.app.Registry().Remove(anchorID)

	for {
		var event pointerEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}

		if !h.app.IsEnabled() {
			continue
		}

		point := gesture.Point{X: event.X, Y: event.Y}
		switch event.Type {
		case "down":
			engine.PointerDown(point)
		case "move":
			engine.PointerMove(point)
		case "up":
			result := engine.PointerUp(point)
			if result == nil {
				continue // rejected tap, no message at all
			}
			h.sendResult(conn, result)
		}
	}
}

// sendResult reports the classification outcome to the client and, on
// match, hands the result to the dispatcher.
func (h *PointerHandler) sendResult(conn *websocket.Conn, result *gesture.Result) {
	if result.Matched {
		h.app.HandleResult(result)

		msg := matchMessage{
			Type:       "match",
			TemplateID: result.Template.ID,
			Name:       result.Template.Name,
			CommandID:  result.Template.CommandID,
			Score:      result.Score,
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("websocket match write error: %v", err)
		}
		return
	}

	encoded, err := gesture.EncodePath(result.Path)
	if err != nil {
		log.Printf("failed to encode unmatched path: %v", err)
		return
	}

	msg := unmatchedMessage{Type: "unmatched", Path: json.RawMessage(encoded)}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("websocket unmatched write error: %v", err)
	}
}
