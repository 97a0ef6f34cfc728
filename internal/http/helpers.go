package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

// writeError maps the core error taxonomy onto HTTP statuses: validation
// failures are the caller's to fix (422), storage failures are ours (500).
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Field: ve.Field})
		return
	}

	slog.ErrorContext(r.Context(), "Request failed",
		applog.FieldComponent, applog.ComponentHTTP,
		applog.FieldPath, r.URL.Path,
		applog.FieldError, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

type expensePayload struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Owner       int64  `json:"owner,omitempty"`
}

func toPayload(e core.Expense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		Category:    e.Category.DisplayName(),
		Date:        e.Date.Format("2006-01-02"),
		Owner:       e.Owner,
	}
}

func toPayloads(records []core.Expense) []expensePayload {
	out := make([]expensePayload, len(records))
	for i, e := range records {
		out[i] = toPayload(e)
	}
	return out
}
