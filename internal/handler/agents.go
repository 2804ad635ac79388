package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gemachapp/ledger-service/internal/middleware"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginAdmin handles POST /login/admin
func (h *Handler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.LoginAdmin(r.Context(), req.Name, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// LoginAgent handles POST /login/agent
func (h *Handler) LoginAgent(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, err := h.svc.LoginAgent(r.Context(), req.Name, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateAdmin handles POST /admins
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	admin, err := h.svc.CreateAdmin(r.Context(), req.Name, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

// CreateAgent handles POST /agents
func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	agent, err := h.svc.CreateAgent(r.Context(), req.Name, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

// GetAgent handles GET /agents/{id}
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}
	agent, err := h.svc.GetAgent(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// ListAgents handles GET /agents
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.svc.ListAgents(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// UpdateAgent handles PUT /agents/{id}
func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	byAgent, _ := r.Context().Value(middleware.UserIDKey).(string)
	agent, err := h.svc.UpdateAgent(r.Context(), id, req.Name, req.Password, byAgent)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// DeleteAgent handles DELETE /agents/{id}
func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}
	if err := h.svc.DeleteAgent(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
