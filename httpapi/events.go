package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"roboid/eventbus"
	"roboid/shared"
)

// sseHandler streams every ConnectionStateChanged and LineTracerCompleted
// event published on the manager's bus as a server-sent-events stream,
// one JSON object per event, until the client disconnects (spec §6).
func (s *Server) sseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, "retry: 3000\n\n")
	flusher, ok := w.(http.Flusher)
	if ok {
		flusher.Flush()
	}

	bus := s.mgr.Bus()
	events := make(chan eventbus.Event, shared.EVENT_BUS_BUFFER_SIZE)
	forward := func(evt eventbus.Event) {
		select {
		case events <- evt:
		default:
			shared.DebugPrint("httpapi: SSE client too slow, dropping event %s", evt.Type)
		}
	}

	connID := bus.Subscribe(eventbus.TypeConnectionStateChanged, forward)
	lineID := bus.Subscribe(eventbus.TypeLineTracerCompleted, forward)
	defer bus.Unsubscribe(eventbus.TypeConnectionStateChanged, connID)
	defer bus.Unsubscribe(eventbus.TypeLineTracerCompleted, lineID)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-events:
			payload, err := json.Marshal(evt.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, payload)
			if ok {
				flusher.Flush()
			}
		}
	}
}
