package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caseflow/caseflow-api/internal/api"
	apiMiddleware "github.com/caseflow/caseflow-api/internal/api/middleware"
	"github.com/caseflow/caseflow-api/internal/api/shared"
)

// requestTimeout bounds end-to-end request handling.
const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewRequestLogger())
	r.Use(apiMiddleware.NewRecoverer())
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.RequireJSON)

	// Unknown routes and known routes hit with the wrong method answer with
	// the same envelope the handlers use.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound,
			"Not Found", "The requested resource was not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed,
			shared.CategoryMethodNotAllowed,
			fmt.Sprintf("HTTP method '%s' is not supported for this endpoint", r.Method))
	})

	// Register routes
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	r.Route("/api/v1/tasks", taskHandler.Routes)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "available"})
	})

	return r
}
