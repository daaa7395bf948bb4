package server

import (
	"encoding/json"
	"net/http"

	"github.com/meltforce/tacticalfit/internal/models"
)

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Settings())
}

type startDateRequest struct {
	StartDate string `json:"start_date"`
}

func (s *Server) handleSetStartDate(w http.ResponseWriter, r *http.Request) {
	var req startDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	date, err := models.ParseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.app.SetStartDate(r.Context(), date); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.app.Settings())
}

type shiftRequest struct {
	Days *int `json:"days"`
}

// handleShift moves the whole schedule, e.g. after missed days.
func (s *Server) handleShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Days == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days is required"})
		return
	}
	if err := s.app.ShiftSchedule(r.Context(), *req.Days); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.app.Settings())
}
