package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// getRobots returns a JSON array of every connected robot's snapshot.
func (s *Server) getRobots(w http.ResponseWriter, r *http.Request) {
	robots := s.mgr.Robots()
	out := make([]map[string]any, 0, len(robots))
	for _, h := range robots {
		out = append(out, h.Snapshot())
	}
	writeJSON(w, http.StatusOK, out)
}

// getRobot returns one robot's snapshot by its registration index.
func (s *Server) getRobot(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid robot index", http.StatusBadRequest)
		return
	}

	robots := s.mgr.Robots()
	if index < 0 || index >= len(robots) {
		http.Error(w, "robot not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, robots[index].Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}
