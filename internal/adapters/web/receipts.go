package web

import (
	"net/http"
	"strconv"

	"freight-office/internal/app"
	"freight-office/internal/core"
)

// listReceipts handles GET /api/receipts?from=&to=&party_id=.
func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	partyID := 0
	if p := r.URL.Query().Get("party_id"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, r, "invalid party_id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		partyID = parsed
	}

	result, err := h.svc.ListReceipts(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"), partyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createReceipt handles POST /api/receipts.
func (h *Handler) createReceipt(w http.ResponseWriter, r *http.Request) {
	var req app.ReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateReceipt(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// getReceipt handles GET /api/receipts/{id}.
func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetReceipt(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateReceipt handles PUT /api/receipts/{id}.
func (h *Handler) updateReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.ReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateReceipt(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addReceiptPayment handles POST /api/receipts/{id}/payments.
func (h *Handler) addReceiptPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var entry core.PaymentEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	result, err := h.svc.AddReceiptPayment(r.Context(), id, entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// removeReceiptPayment handles DELETE /api/receipts/{id}/payments/{index}.
func (h *Handler) removeReceiptPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.RemoveReceiptPayment(r.Context(), id, index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setPODReceived handles POST /api/receipts/{id}/pod.
func (h *Handler) setPODReceived(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Received bool `json:"received"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetPODReceived(r.Context(), id, req.Received); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, map[string]bool{"pod_received": req.Received})
}
