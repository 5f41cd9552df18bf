package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"thesisdesk/internal/feedback"
	"thesisdesk/internal/formclient"
	"thesisdesk/internal/service"
)

// FeedbackHandler handles feedback session endpoints
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// Open handles POST /v1/feedback/{itemId}/open
func (h *FeedbackHandler) Open(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	result, err := h.feedbackSvc.Open(r.Context(), itemID)
	if err != nil {
		var ingestErr *formclient.IngestionError
		if errors.As(err, &ingestErr) {
			writeError(w, http.StatusBadGateway, ingestErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// setAnswerRequest is the request body for writing one answer
type setAnswerRequest struct {
	Value interface{} `json:"value"`
}

// SetAnswer handles PUT /v1/feedback/{itemId}/answers/{questionId}
func (h *FeedbackHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req setAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.feedbackSvc.SetAnswer(vars["itemId"], vars["questionId"], req.Value)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ClearAnswer handles DELETE /v1/feedback/{itemId}/answers/{questionId}
func (h *FeedbackHandler) ClearAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	summary, err := h.feedbackSvc.ClearAnswer(vars["itemId"], vars["questionId"])
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Save handles POST /v1/feedback/{itemId}/save
func (h *FeedbackHandler) Save(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	summary, err := h.feedbackSvc.Save(r.Context(), itemID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Submit handles POST /v1/feedback/{itemId}/submit
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	item, err := h.feedbackSvc.Submit(r.Context(), itemID)
	if err != nil {
		var validationErr *feedback.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":   "required answers missing",
				"missing": validationErr.Missing,
			})
			return
		}
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Summary handles GET /v1/feedback/{itemId}/summary
func (h *FeedbackHandler) Summary(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	summary, err := h.feedbackSvc.Summary(itemID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Close handles POST /v1/feedback/{itemId}/close
func (h *FeedbackHandler) Close(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	h.feedbackSvc.Close(itemID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// RecoverDraft handles GET /v1/feedback/{itemId}/draft
func (h *FeedbackHandler) RecoverDraft(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]

	answers, savedAt, err := h.feedbackSvc.RecoverDraft(r.Context(), itemID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if answers == nil {
		writeError(w, http.StatusNotFound, "no draft backup")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"answers": answers,
		"savedAt": savedAt,
	})
}

// RefreshSchema handles POST /v1/feedback/schema/refresh
func (h *FeedbackHandler) RefreshSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.feedbackSvc.RefreshSchema(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// writeSessionError maps session errors onto HTTP statuses
func (h *FeedbackHandler) writeSessionError(w http.ResponseWriter, err error) {
	var persistErr *feedback.PersistenceError
	switch {
	case errors.Is(err, service.ErrNoSession):
		writeError(w, http.StatusNotFound, "no open session for item")
	case errors.Is(err, feedback.ErrNotEditable):
		writeError(w, http.StatusConflict, "item is no longer editable")
	case errors.Is(err, feedback.ErrSessionClosed):
		writeError(w, http.StatusGone, "session closed")
	case errors.As(err, &persistErr):
		writeError(w, http.StatusBadGateway, persistErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
