package middleware

import (
	"fmt"
	"net/http"

	"github.com/ankitpatne/clipTag/internal/api_context"
	"github.com/ankitpatne/clipTag/internal/handler/api"
	"github.com/go-chi/chi/v5"
)

// maxVideoIDLen matches the video_id column width.
const maxVideoIDLen = 100

func WithVideoID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			if len(id) > maxVideoIDLen {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID must be at most %d characters", maxVideoIDLen), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := api_context.WithID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
