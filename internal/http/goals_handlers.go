package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/services"
)

type AddGoalRequest struct {
	Goal         string `json:"goal"`
	Priority     string `json:"priority"`
	TimeEstimate string `json:"timeEstimate"`
	Date         string `json:"date"`
}

func (s *Server) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req AddGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Goal == "" || req.Priority == "" || req.Date == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	email := CurrentEmail(r)
	username := ""
	if profile, err := s.Profiles.GetByEmail(r.Context(), email); err == nil && profile != nil {
		username = profile.Username
	}

	created, err := s.Goals.Add(r.Context(), models.Goal{
		Email:        email,
		Username:     username,
		Date:         req.Date,
		Goal:         req.Goal,
		Priority:     req.Priority,
		TimeEstimate: req.TimeEstimate,
		Status:       models.StatusNotCompleted,
	})
	if err != nil {
		WriteServiceError(w, err, "Failed to add goal")
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) ListGoals(w http.ResponseWriter, r *http.Request) {
	email := CurrentEmail(r)
	date := r.URL.Query().Get("date")

	// Teachers and admins may query across students; everyone else only
	// sees their own goals.
	if IsStaff(r) {
		goals, err := s.Goals.GetAll(r.Context(), services.GoalQuery{
			Email:    r.URL.Query().Get("studentEmail"),
			Username: r.URL.Query().Get("studentUsername"),
			Date:     date,
		})
		if err != nil {
			WriteServiceError(w, err, "Failed to get goals")
			return
		}
		WriteJSON(w, http.StatusOK, goals)
		return
	}

	username := ""
	if profile, err := s.Profiles.GetByEmail(r.Context(), email); err == nil && profile != nil {
		username = profile.Username
	}
	goals, err := s.Goals.Get(r.Context(), services.GoalQuery{
		Email:    email,
		Username: username,
		Date:     date,
	})
	if err != nil {
		WriteServiceError(w, err, "Failed to get goals")
		return
	}
	WriteJSON(w, http.StatusOK, goals)
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "goalId")
	var patch models.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	updated, err := s.Goals.Update(r.Context(), id, patch)
	if err != nil {
		WriteServiceError(w, err, "Failed to update goal")
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}
