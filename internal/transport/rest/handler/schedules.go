package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"thesisdesk/internal/cache"
	"thesisdesk/internal/model"
	"thesisdesk/internal/service"
)

// ScheduleHandler handles defense schedule endpoints
type ScheduleHandler struct {
	scheduleSvc *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleSvc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create handles POST /v1/schedules
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var schedule model.DefenseSchedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.scheduleSvc.Create(r.Context(), &schedule)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"scheduleId": id})
}

// List handles GET /v1/schedules
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.ScheduleStatus(r.URL.Query().Get("status"))
	groupID := r.URL.Query().Get("groupId")

	schedules, err := h.scheduleSvc.List(r.Context(), status, groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if schedules == nil {
		schedules = []*model.DefenseSchedule{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}

// Get handles GET /v1/schedules/{scheduleId}
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["scheduleId"]

	schedule, err := h.scheduleSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			writeError(w, http.StatusNotFound, "schedule not found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid schedule id")
		return
	}

	progress, err := h.scheduleSvc.FeedbackProgress(r.Context(), id)
	if err != nil {
		progress = 0
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schedule":          schedule,
		"feedbackSubmitted": progress,
	})
}

// Scoreboard handles GET /v1/schedules/{scheduleId}/scoreboard
func (h *ScheduleHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["scheduleId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := h.scheduleSvc.Scoreboard(r.Context(), id, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []cache.ScoreboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scoreboard": entries})
}

// Update handles PUT /v1/schedules/{scheduleId}
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["scheduleId"]

	var schedule model.DefenseSchedule
	if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	schedule.ID = id

	if err := h.scheduleSvc.Update(r.Context(), &schedule); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			writeError(w, http.StatusNotFound, "schedule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}
