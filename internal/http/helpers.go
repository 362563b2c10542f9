package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"paytrack/internal/core"
)

type contextKey string

const requestIDKey contextKey = "request_id"

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeJSON decodes the request body, rejecting unparseable input.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// parseMonth parses a YYYY-MM query value into a reference date for month
// filtering.
func parseMonth(s string) (core.Date, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}
