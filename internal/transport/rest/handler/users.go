package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"thesisdesk/internal/model"
	"thesisdesk/internal/service"
)

// UserHandler handles user and group endpoints
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := model.UserRole(r.URL.Query().Get("role"))
	groupID := r.URL.Query().Get("groupId")

	users, err := h.userSvc.ListUsers(r.Context(), role, groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// GetUser handles GET /v1/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["userId"]

	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CountUsers handles GET /v1/users/count
func (h *UserHandler) CountUsers(w http.ResponseWriter, r *http.Request) {
	role := model.UserRole(r.URL.Query().Get("role"))

	count, err := h.userSvc.CountUsers(r.Context(), role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// ListGroups handles GET /v1/groups
func (h *UserHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")

	groups, err := h.userSvc.ListGroups(r.Context(), kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// GetGroup handles GET /v1/groups/{groupId}
func (h *UserHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["groupId"]

	group, err := h.userSvc.GetGroup(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, group)
}
