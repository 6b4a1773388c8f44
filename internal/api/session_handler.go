package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexivanou/weather-widget/internal/widget"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SessionHandler exposes widget sessions over HTTP
type SessionHandler struct {
	store  *SessionStore
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store *SessionStore, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{store: store, logger: logger}
}

// SessionResponse pairs a session id with its rendered view
type SessionResponse struct {
	ID   string      `json:"id"`
	View widget.View `json:"view"`
}

// EventRequest is one UI event posted to a session.
//
// Types: input (text), key (key), submit, select (index), hover (index),
// outside, focus.
type EventRequest struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Key   string `json:"key,omitempty"`
	Index int    `json:"index,omitempty"`
}

// ToEvent converts the request into a widget event
func (e EventRequest) ToEvent() (widget.Event, error) {
	switch e.Type {
	case "input":
		return widget.InputChanged{Text: e.Text}, nil
	case "key":
		key := widget.Key(e.Key)
		switch key {
		case widget.KeyEnter, widget.KeyArrowDown, widget.KeyArrowUp, widget.KeyEscape:
			return widget.KeyPressed{Key: key}, nil
		}
		return nil, fmt.Errorf("unsupported key %q", e.Key)
	case "submit":
		return widget.Submitted{}, nil
	case "select":
		return widget.SuggestionSelected{Index: e.Index}, nil
	case "hover":
		return widget.SuggestionHovered{Index: e.Index}, nil
	case "outside":
		return widget.PointerOutside{}, nil
	case "focus":
		return widget.Focused{}, nil
	}
	return nil, fmt.Errorf("unsupported event type %q", e.Type)
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, c := h.store.Create()
	writeJSON(w, h.logger, http.StatusCreated, SessionResponse{ID: id, View: c.View()})
}

// GetSession handles GET /api/v1/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, err := h.store.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{ID: id, View: c.View()})
}

// PostEvent handles POST /api/v1/sessions/{id}/events
func (h *SessionHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, err := h.store.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	ev, err := req.ToEvent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := c.Send(r.Context(), ev)
	if err != nil {
		if errors.Is(err, widget.ErrClosed) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Warn("Event not applied", zap.String("session_id", id), zap.Error(err))
		http.Error(w, "event not applied", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SessionResponse{ID: id, View: view})
}

// DeleteSession handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(mux.Vars(r)["id"]); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
