package main

import (
	"log/slog"
	"net/http"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api"
	apiMiddleware "github.com/PANAMA-HIVE/Backend-Deploy/internal/api/middleware"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routerDeps is everything the HTTP surface needs.
type routerDeps struct {
	logger         *slog.Logger
	allowedOrigins []string
	tokenService   auth.TokenService
	studyService   service.StudyService
	groupService   service.GroupService
}

func (app *application) setupRouter() http.Handler {
	return newRouter(routerDeps{
		logger:         app.logger,
		allowedOrigins: app.config.Server.AllowedOrigins,
		tokenService:   app.tokenService,
		studyService:   app.studyService,
		groupService:   app.groupService,
	})
}

// newRouter registers middleware and routes.
func newRouter(d routerDeps) http.Handler {
	if d.logger == nil {
		d.logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(d.logger))
	r.Use(apiMiddleware.Metrics)
	r.Use(apiMiddleware.Recoverer)
	// go-chi/cors reads an empty origin list as "allow all", which must not
	// be combined with credentials.
	if len(d.allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{apiMiddleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	} else {
		d.logger.Warn("no allowed origins configured; cross-origin requests will be refused")
	}

	studyHandler := api.NewStudyHandler(d.studyService, d.logger)
	groupHandler := api.NewGroupHandler(d.groupService, d.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(d.tokenService)

	r.NotFound(api.NotFound)
	r.Get("/", api.Hello)
	r.Post("/", api.HelloPost)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.APIHealth)

		r.Route("/rag", func(r chi.Router) {
			r.Get("/health", studyHandler.Health)
			r.Post("/summary", studyHandler.Summary)
			r.Post("/quiz", studyHandler.Quiz)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/groupDashboard", groupHandler.Dashboard)
			r.Get("/find", groupHandler.Find)
			r.Post("/createGroup", groupHandler.Create)
			r.Post("/my-groups", groupHandler.MyGroups)
			r.Post("/{id}", groupHandler.Details)
			r.Post("/{id}/join", groupHandler.Join)
			r.Post("/{id}/leave", groupHandler.Leave)
		})
	})

	return r
}
