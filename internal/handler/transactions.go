package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	ClientID   int64            `json:"client_id"`
	Added      *decimal.Decimal `json:"added"`
	Subtracted *decimal.Decimal `json:"subtracted"`
	Agent      string           `json:"agent"`
	SendEmail  bool             `json:"send_email"`
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ProcessTransaction handles POST /transactions
func (h *Handler) ProcessTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.ProcessTransaction(r.Context(), req.ClientID,
		amountOrZero(req.Added), amountOrZero(req.Subtracted), req.Agent, req.SendEmail)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "transaction processed successfully",
		"transaction_id": res.TransactionID,
		"balance":        res.Balance,
	})
}

// ClientLedger handles GET /transactions/client/{clientId}
func (h *Handler) ClientLedger(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	entries, err := h.svc.ClientLedger(r.Context(), clientID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type transactionEditRequest struct {
	Added      *decimal.Decimal `json:"added"`
	Subtracted *decimal.Decimal `json:"subtracted"`
}

// EditTransaction handles PUT /transactions/{id}
func (h *Handler) EditTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	var req transactionEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := h.svc.EditTransaction(r.Context(), id,
		amountOrZero(req.Added), amountOrZero(req.Subtracted))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "transaction updated successfully",
		"balance": balance,
	})
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	balance, err := h.svc.DeleteTransaction(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "transaction deleted successfully",
		"balance": balance,
	})
}
