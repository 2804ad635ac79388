package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/gemachapp/ledger-service/internal/models"
)

// IssueCheck handles POST /checks
func (h *Handler) IssueCheck(w http.ResponseWriter, r *http.Request) {
	var check models.Check
	if err := json.NewDecoder(r.Body).Decode(&check); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.IssueCheck(r.Context(), &check); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "check created successfully",
		"check_id":    check.CheckID,
		"issued_date": check.IssuedDate,
	})
}

// ListChecks handles GET /checks
func (h *Handler) ListChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := h.svc.ListChecks(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

// ChecksByClient handles GET /checks/client/{clientId}
func (h *Handler) ChecksByClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	checks, err := h.svc.ChecksByClient(r.Context(), clientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checks)
}

// ChecksByDate handles GET /checks/date/{date} with date as YYYY-MM-DD
func (h *Handler) ChecksByDate(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", mux.Vars(r)["date"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, use YYYY-MM-DD")
		return
	}
	checks, err := h.svc.ChecksByDate(r.Context(), day)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checks)
}
