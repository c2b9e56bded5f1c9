package api

import (
	"net/http"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

func ModerationHandler(svc port.ModerationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListFlagged(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list flagged videos", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Returned %d flagged videos", len(out))
	}
}
