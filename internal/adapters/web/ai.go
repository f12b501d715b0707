package web

import "net/http"

// interpretConsignment handles POST /api/ai/interpret. The returned draft is
// a proposal only; the client must submit it through POST /api/receipts after
// the user confirms it.
func (h *Handler) interpretConsignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.InterpretConsignment(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, err.Error(), "AI_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}
