package api

import (
	"net/http"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/ankitpatne/clipTag/internal/validation"
)

func SearchVideosHandler(svc port.VideoSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := port.SearchVideosInput{Query: r.URL.Query().Get("query")}
		if errs := validation.ValidateStruct(in); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.SearchVideos(r.Context(), in)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not search videos", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Search %q matched %d videos", in.Query, len(out.Results))
	}
}
