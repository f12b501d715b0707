package web

import (
	"net/http"

	"freight-office/internal/app"
	"freight-office/internal/core"
)

// listHirings handles GET /api/hirings?from=&to=.
func (h *Handler) listHirings(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListHirings(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createHiring handles POST /api/hirings.
func (h *Handler) createHiring(w http.ResponseWriter, r *http.Request) {
	var req app.HiringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateHiring(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// getHiring handles GET /api/hirings/{id}.
func (h *Handler) getHiring(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetHiring(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateHiring handles PUT /api/hirings/{id}.
func (h *Handler) updateHiring(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.HiringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateHiring(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addHiringPayment handles POST /api/hirings/{id}/payments.
func (h *Handler) addHiringPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var entry core.PaymentEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	result, err := h.svc.AddHiringPayment(r.Context(), id, entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// removeHiringPayment handles DELETE /api/hirings/{id}/payments/{index}.
func (h *Handler) removeHiringPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.RemoveHiringPayment(r.Context(), id, index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
