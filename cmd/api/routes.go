package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ankitpatne/clipTag/internal/handler/api"
	"github.com/ankitpatne/clipTag/internal/logger"
	cMiddleware "github.com/ankitpatne/clipTag/internal/middleware"
	"github.com/ankitpatne/clipTag/internal/port"
)

type services struct {
	uploader   port.VideoUploader
	runner     port.AnalysisRunner
	scheduler  port.AnalysisScheduler
	moderation port.ModerationLister
	searcher   port.VideoSearcher
	lister     port.VideoLister
	getter     port.VideoGetter
	renderer   port.HTTPRenderer
	callback   port.TranscodeCallback
}

func initRouter(ctx context.Context, jwtKey string, svcs services) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	// the transcoder cannot present a bearer token
	r.Post("/mediaconvert-callback", api.TranscodeCallbackHandler(svcs.callback))

	r.Group(func(r chi.Router) {
		r.Use(cMiddleware.WithBearerAuth(jwtKey))

		r.Post("/upload", api.UploadVideoHandler(svcs.uploader))
		r.With(cMiddleware.WithVideoID()).
			Post("/analyze/{id}", api.AnalyseVideoHandler(svcs.runner, svcs.scheduler))
		r.Get("/moderation", api.ModerationHandler(svcs.moderation))
		r.Get("/search", api.SearchVideosHandler(svcs.searcher))
		r.Get("/videos", api.ListVideosHandler(svcs.lister))
		r.With(cMiddleware.WithVideoID()).
			Get("/videos/{id}", api.GetVideoHandler(svcs.renderer, svcs.getter))
	})

	return r
}
