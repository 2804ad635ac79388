package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gemachapp/ledger-service/internal/export"
	"github.com/gemachapp/ledger-service/internal/middleware"
	"github.com/gemachapp/ledger-service/internal/models"
)

// CreateClient handles POST /clients
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateClient(r.Context(), &client); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// GetClient handles GET /clients/{id}
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	client, err := h.svc.GetClient(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// ListClients handles GET /clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// UpdateClient handles PUT /clients/{id}
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var client models.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	client.ID = id

	byAgent, _ := r.Context().Value(middleware.UserIDKey).(string)
	if err := h.svc.UpdateClient(r.Context(), &client, byAgent); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/{id}
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	if err := h.svc.DeleteClient(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClientStatement handles GET /clients/{id}/statement, returning the ledger as
// an XML document
func (h *Handler) ClientStatement(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	statement, err := h.svc.ClientStatement(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	body, err := export.BuildXML(*statement)
	if err != nil {
		h.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
