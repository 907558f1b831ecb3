package api

import (
	"net/http"
	"time"

	"github.com/openclaw/labelgen/batch"
	"github.com/openclaw/labelgen/symbol"
)

type statusResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
		Version: s.Version,
	})
}

func (s *Server) handleSymbologies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"symbologies": symbol.ListSymbologies()})
}

type incrementRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	var req incrementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	next, err := batch.Increment(req.Value)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incrementRequest{Value: next})
}
