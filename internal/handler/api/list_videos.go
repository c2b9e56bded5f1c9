package api

import (
	"net/http"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
)

func ListVideosHandler(svc port.VideoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListVideos(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list videos", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Returned %d videos", len(out))
	}
}
