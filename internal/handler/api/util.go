package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ankitpatne/clipTag/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError answers with {"error": msg}. Client errors are logged as
// warnings, everything else as errors.
func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	logf := logger.Errorf
	if status < http.StatusInternalServerError {
		logf = logger.Warnf
	}
	if err != nil {
		logf(ctx, "❌  %s: %v", msg, err)
	} else {
		logf(ctx, "❌  %s", msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, "This endpoint does not exist")
	}
}

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, "This method is not allowed")
	}
}
