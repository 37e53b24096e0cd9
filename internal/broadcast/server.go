package broadcast

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mj1618/statusbar-window/internal/model"
)

// Message types.
const (
	TypeLayoutInit    = "layout_init"
	TypeLayoutChanged = "layout_changed"
	TypeFitsChanged   = "fits_changed"
	TypeTopUIChanged  = "top_ui_changed"
)

// Server upgrades HTTP requests to websocket clients of a Hub.
type Server struct {
	logger   *slog.Logger
	hub      *Hub
	snapshot func() model.Configuration
}

// NewServer returns a server whose clients get snapshot() as their first
// message. snapshot may be nil.
func NewServer(hub *Hub, snapshot func() model.Configuration) *Server {
	return &Server{logger: hub.logger, hub: hub, snapshot: snapshot}
}

// Register registers the websocket handler on mux.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, s.handleWS)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(s.hub, conn, r.RemoteAddr)

	// Queue the snapshot before registering so it is the first frame.
	if s.snapshot != nil {
		if msg, err := encode(TypeLayoutInit, s.snapshot()); err == nil {
			client.send <- msg
		}
	}
	s.hub.register <- client

	// The pumps outlive the request; the hub and connection errors end them.
	go client.writePump()
	go client.readPump()
}

// Publish serializes data in an envelope and broadcasts it.
func (h *Hub) Publish(typ string, data any) {
	msg, err := encode(typ, data)
	if err != nil {
		h.logger.Warn("broadcast marshal failed", "type", typ, "error", err)
		return
	}
	h.BroadcastBytes(msg)
}

func encode(typ string, data any) ([]byte, error) {
	now := time.Now().UTC()
	return json.Marshal(Envelope{Type: typ, TS: &now, Data: data})
}
