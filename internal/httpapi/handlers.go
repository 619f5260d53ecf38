package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/quantfold/playbook/internal/decision"
)

const maxRequestBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDecide parses a decision request and returns the composite decision.
// Gatekeeper failures are part of the payload, never HTTP errors.
func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req decision.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if len(req.Snapshots) == 0 {
		writeError(w, http.StatusBadRequest, "snapshots are required")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Decide(req))
}
