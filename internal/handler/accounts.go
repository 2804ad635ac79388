package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
)

// GetBalance handles GET /accounts/balance/{clientId}
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	balance, err := h.svc.GetBalance(r.Context(), clientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "balance": balance})
}

// ValidateFunds handles GET /accounts/validate-funds/{clientId}?amount=
func (h *Handler) ValidateFunds(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	sufficient, err := h.svc.ValidateFunds(r.Context(), clientID, amount)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sufficient": sufficient})
}

// ResyncAllAccounts handles POST /accounts/resync
func (h *Handler) ResyncAllAccounts(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.ResyncAllAccounts(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resynced": count})
}

// ResyncAccountBalance handles POST /accounts/resync/{clientId}
func (h *Handler) ResyncAccountBalance(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	balance, err := h.svc.ResyncAccountBalance(r.Context(), clientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"client_id": clientID, "balance": balance})
}

// RecalculateRunningTotals handles POST /accounts/recalculate/{clientId}
func (h *Handler) RecalculateRunningTotals(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	if err := h.svc.RecalculateRunningTotals(r.Context(), clientID); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "running totals recalculated"})
}
