package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// ListUpdates handles GET /updates
func (h *Handler) ListUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.ListUpdates(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// UpdatesForClient handles GET /updates/client/{clientId}
func (h *Handler) UpdatesForClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	updates, err := h.svc.UpdatesForClient(r.Context(), clientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// UpdatesForAgent handles GET /updates/agent/{agentId}
func (h *Handler) UpdatesForAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := pathID(r, "agentId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}
	updates, err := h.svc.UpdatesForAgent(r.Context(), agentID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

// UpdatesByAgent handles GET /updates/by-agent/{agent}
func (h *Handler) UpdatesByAgent(w http.ResponseWriter, r *http.Request) {
	updates, err := h.svc.UpdatesByAgent(r.Context(), mux.Vars(r)["agent"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updates)
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendEmail handles POST /email
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.SendEmail(req.To, req.Subject, req.Body); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "email sent successfully"})
}
