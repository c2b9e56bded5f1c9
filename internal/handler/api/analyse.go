package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ankitpatne/clipTag/internal/api_context"
	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/usecase/video"
)

type AnalysisQueuedResponse struct {
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
}

// AnalyseVideoHandler runs the analysis inline, or queues it when the request
// carries async=true.
func AnalyseVideoHandler(runner port.AnalysisRunner, scheduler port.AnalysisScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		async := false
		if raw := r.URL.Query().Get("async"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "async must be a boolean", err)
				return
			}
			async = v
		}

		if async {
			if err := scheduler.ScheduleAnalysis(r.Context(), id); err != nil {
				writeAnalysisError(w, id, err)
				return
			}
			RespondJSON(w, http.StatusAccepted, AnalysisQueuedResponse{VideoID: id, Status: "queued"})
			logger.Infof(r.Context(), "✅  Queued analysis of video #%s", id)
			return
		}

		out, err := runner.RunAnalysis(r.Context(), id)
		if err != nil {
			writeAnalysisError(w, id, err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully analysed video #%s", id)
	}
}

func writeAnalysisError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, video.ErrRecordNotFound):
		WriteError(w, http.StatusNotFound, "Video not found", nil)
	case errors.Is(err, video.ErrAnalysisInProgress):
		WriteError(w, http.StatusConflict, "Analysis already in progress", nil)
	case errors.Is(err, video.ErrDispatchDisabled):
		WriteError(w, http.StatusServiceUnavailable, "Asynchronous analysis is disabled", nil)
	case errors.Is(err, video.ErrAnnotationTimeout):
		WriteError(w, http.StatusGatewayTimeout, "Video annotation timed out", err)
	case errors.Is(err, video.ErrDownload), errors.Is(err, video.ErrGeneration):
		WriteError(w, http.StatusBadGateway, "Upstream service failed", err)
	default:
		WriteError(w, http.StatusInternalServerError, "could not analyse video #"+id, err)
	}
}
