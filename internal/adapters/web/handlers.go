package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"freight-office/internal/app"
	webui "freight-office/web"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService, the chi router, and the parsed
// print templates.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	printTmpl *template.Template
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	printTmpl, err := template.ParseFS(webui.Templates, "templates/*.html")
	if err != nil {
		panic("web/templates embed parse failed: " + err.Error())
	}

	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		printTmpl: printTmpl,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// Health and auth are public.
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Lorry receipts
		r.Get("/api/receipts", h.listReceipts)
		r.Post("/api/receipts", h.createReceipt)
		r.Get("/api/receipts/{id}", h.getReceipt)
		r.Put("/api/receipts/{id}", h.updateReceipt)
		r.Post("/api/receipts/{id}/payments", h.addReceiptPayment)
		r.Delete("/api/receipts/{id}/payments/{index}", h.removeReceiptPayment)
		r.Post("/api/receipts/{id}/pod", h.setPODReceived)

		// Vehicle hirings
		r.Get("/api/hirings", h.listHirings)
		r.Post("/api/hirings", h.createHiring)
		r.Get("/api/hirings/{id}", h.getHiring)
		r.Put("/api/hirings/{id}", h.updateHiring)
		r.Post("/api/hirings/{id}/payments", h.addHiringPayment)
		r.Delete("/api/hirings/{id}/payments/{index}", h.removeHiringPayment)

		// Bookings
		r.Get("/api/bookings", h.listBookings)
		r.Post("/api/bookings", h.createBooking)
		r.Get("/api/bookings/{id}", h.getBooking)
		r.Put("/api/bookings/{id}", h.updateBooking)
		r.Post("/api/bookings/{id}/payments", h.addBookingPayment)
		r.Delete("/api/bookings/{id}/payments/{index}", h.removeBookingPayment)

		// Invoices
		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Get("/api/invoices/{id}/print", h.printInvoice)

		// Masters
		r.Get("/api/parties", h.listParties)
		r.Post("/api/parties", h.createParty)
		r.Get("/api/parties/{id}", h.getParty)
		r.Put("/api/parties/{id}", h.updateParty)
		r.Delete("/api/parties/{id}", h.deactivateParty)

		r.Get("/api/trucks", h.listTrucks)
		r.Post("/api/trucks", h.createTruck)
		r.Get("/api/trucks/{id}", h.getTruck)
		r.Put("/api/trucks/{id}", h.updateTruck)
		r.Delete("/api/trucks/{id}", h.deactivateTruck)

		// AI
		r.Post("/api/ai/interpret", h.interpretConsignment)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the {id} URL parameter as an int; writes 400 and returns
// false when it is not numeric.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// indexParam extracts the {index} URL parameter as an int.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, "invalid index", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
