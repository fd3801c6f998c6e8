package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the admin surface. The two share
// handlers; only the admin group sits behind the auth gate.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/feedback", handlers.feedbackHandler.listApproved())
		r.Post("/feedback", handlers.feedbackHandler.submitFeedback())
		r.Post("/contact", handlers.contactHandler.submitMessage())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.requireAdmin)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Patch("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Get("/admin/feedback", handlers.feedbackHandler.listForAdmin())
		r.Patch("/feedback/{feedbackID}", handlers.feedbackHandler.setApproved())
		r.Delete("/feedback/{feedbackID}", handlers.feedbackHandler.deleteFeedback())

		r.Get("/contact-messages", handlers.contactHandler.listMessages())
	})
}
