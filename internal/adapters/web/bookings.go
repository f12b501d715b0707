package web

import (
	"net/http"

	"freight-office/internal/app"
	"freight-office/internal/core"
)

// listBookings handles GET /api/bookings?from=&to=.
func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListBookings(r.Context(),
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createBooking handles POST /api/bookings.
func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req app.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// getBooking handles GET /api/bookings/{id}.
func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateBooking handles PUT /api/bookings/{id}.
func (h *Handler) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req app.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateBooking(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addBookingPayment handles POST /api/bookings/{id}/payments.
func (h *Handler) addBookingPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var entry core.PaymentEntry
	if !decodeJSON(w, r, &entry) {
		return
	}
	result, err := h.svc.AddBookingPayment(r.Context(), id, entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// removeBookingPayment handles DELETE /api/bookings/{id}/payments/{index}.
func (h *Handler) removeBookingPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	result, err := h.svc.RemoveBookingPayment(r.Context(), id, index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
