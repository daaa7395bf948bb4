package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/models"
	"github.com/meltforce/tacticalfit/internal/schedule"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Daily(s.app.Today()))
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.app.Daily(date))
}

type toggleRequest struct {
	Exercise string `json:"exercise"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}

	completed, err := s.app.ToggleExercise(r.Context(), date, req.Exercise)
	if err != nil {
		s.writeError(w, err)
		return
	}
	day := s.app.Daily(date)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":      day.Date,
		"exercise":  req.Exercise,
		"completed": completed,
		"progress":  day.Progress,
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Schedule())
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 || week > schedule.ProgramWeeks {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week must be between 1 and 8"})
		return
	}
	writeJSON(w, http.StatusOK, s.app.Week(week))
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	c := s.app.Resolver().Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"plans":  c.Plans(),
		"phase1": rotationIDs(c.Rotation(1)),
		"phase2": rotationIDs(c.Rotation(2)),
	})
}

func rotationIDs(rot [7]*models.DailyWorkoutPlan) []string {
	ids := make([]string, 0, len(rot))
	for _, p := range rot {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Progress().Snapshot())
}

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.app.ResetProgress(r.Context(), req.Confirm); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.State())
}

type selectRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleViewAction(w http.ResponseWriter, r *http.Request) {
	var state app.State
	switch chi.URLParam(r, "action") {
	case "select":
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
		date, err := models.ParseDate(req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		state = s.app.SelectDate(date)
	case "back":
		state = s.app.Back()
	case "schedule":
		state = s.app.ShowSchedule()
	case "settings":
		state = s.app.ToggleSettings()
	case "close":
		state = s.app.CloseSettings()
	case "prev":
		state = s.app.PrevDay()
	case "next":
		state = s.app.NextDay()
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown view action"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUnknownExercise), errors.Is(err, models.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, app.ErrResetNotConfirmed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return time.Time{}, false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
