package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

// notifications are small JSON envelopes
const maxNotificationBytes = 1 << 20

// TranscodeCallbackHandler receives SNS-style transcode notifications.
func TranscodeCallbackHandler(svc port.TranscodeCallback) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNotificationBytes))
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Error processing notification", err)
			return
		}

		out, err := svc.HandleNotification(r.Context(), body)
		if err != nil {
			if errors.Is(err, video.ErrRecordNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", err)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Error processing notification", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  %s", out.Message)
	}
}
