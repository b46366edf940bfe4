package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/velder/taskboard-api/internal/api"
	apiMiddleware "github.com/velder/taskboard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)
	commentHandler := api.NewCommentHandler(app.commentService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api/1.0", func(r chi.Router) {
		// Account endpoints (public)
		r.Post("/user/reg", userHandler.Register)
		r.Post("/user/login", userHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints
			r.Post("/tasks/create", taskHandler.Create)
			r.Get("/tasks/get", taskHandler.ListForUser)
			r.Get("/tasks/get/{id}", taskHandler.Get)
			r.Put("/tasks/{id}/edit/status", taskHandler.EditStatus)
			r.Put("/tasks/{id}/edit/priority", taskHandler.EditPriority)
			r.Put("/tasks/{id}/edit/description", taskHandler.Edit)
			r.Put("/tasks/{id}/edit/assigned", taskHandler.EditAssigned)
			r.Delete("/tasks/{id}/delete", taskHandler.Delete)

			// Comment endpoints
			r.Post("/comments/create", commentHandler.Create)
			r.Put("/comments/edit", commentHandler.Edit)
			r.Delete("/comments/{id}/delete", commentHandler.Delete)
			r.Get("/comments/get/user", commentHandler.ListForUser)
			r.Get("/comments/get/task", commentHandler.ListForTask)
			r.Get("/comments/get/{id}", commentHandler.Get)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
