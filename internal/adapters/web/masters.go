package web

import (
	"net/http"

	"freight-office/internal/app"
)

// listParties handles GET /api/parties.
func (h *Handler) listParties(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListParties(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createParty handles POST /api/parties.
func (h *Handler) createParty(w http.ResponseWriter, r *http.Request) {
	var req app.PartyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateParty(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// getParty handles GET /api/parties/{id}.
func (h *Handler) getParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetParty(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateParty handles PUT /api/parties/{id}.
func (h *Handler) updateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.PartyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateParty(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deactivateParty handles DELETE /api/parties/{id}. Parties are never hard
// deleted; register rows keep referencing them.
func (h *Handler) deactivateParty(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeactivateParty(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listTrucks handles GET /api/trucks.
func (h *Handler) listTrucks(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListTrucks(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createTruck handles POST /api/trucks.
func (h *Handler) createTruck(w http.ResponseWriter, r *http.Request) {
	var req app.TruckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateTruck(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// getTruck handles GET /api/trucks/{id}.
func (h *Handler) getTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetTruck(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateTruck handles PUT /api/trucks/{id}.
func (h *Handler) updateTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.TruckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateTruck(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deactivateTruck handles DELETE /api/trucks/{id}.
func (h *Handler) deactivateTruck(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeactivateTruck(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
