package httpapi

import (
	"net/http"

	"roboid/eventbus"
	"roboid/shared"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the envelope pushed to every connected WebSocket client.
type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// wsHandler upgrades the connection and pushes every ConnectionStateChanged
// and LineTracerCompleted event as a JSON message until the client
// disconnects or a write fails (spec §6).
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		shared.DebugPrint("httpapi: failed to upgrade websocket connection: %v", err)
		return
	}
	defer conn.Close()

	bus := s.mgr.Bus()
	events := make(chan eventbus.Event, shared.EVENT_BUS_BUFFER_SIZE)
	forward := func(evt eventbus.Event) {
		select {
		case events <- evt:
		default:
			shared.DebugPrint("httpapi: WebSocket client too slow, dropping event %s", evt.Type)
		}
	}

	connID := bus.Subscribe(eventbus.TypeConnectionStateChanged, forward)
	lineID := bus.Subscribe(eventbus.TypeLineTracerCompleted, forward)
	defer bus.Unsubscribe(eventbus.TypeConnectionStateChanged, connID)
	defer bus.Unsubscribe(eventbus.TypeLineTracerCompleted, lineID)

	// Drain and discard inbound frames so the connection's read deadline
	// and close handshake are honored; this surface is push-only.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case evt := <-events:
			if err := conn.WriteJSON(wsMessage{Type: evt.Type, Data: evt.Data}); err != nil {
				return
			}
		}
	}
}
