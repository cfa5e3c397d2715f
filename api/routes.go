package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes wires the public and authenticated route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Operational endpoints
	r.Get("/health", handlers.healthHandler.check())
	r.Method("GET", "/metrics", promhttp.Handler())

	// Public routes
	r.Group(func(r chi.Router) {
		r.Post("/user", handlers.userHandler.createUser())
		r.Post("/login", handlers.userHandler.login())
		r.Get("/users", handlers.userHandler.getAllUsers())

		r.Get("/courses", handlers.courseHandler.getAllCourses())
		r.Get("/courses/{courseID}", handlers.courseHandler.getCourse())

		r.Get("/projects", handlers.projectHandler.getProjects())
		r.Get("/projects/metrics", handlers.projectHandler.getMetrics())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/projects/{projectID}/impact-indicators", handlers.indicatorHandler.getByProject())

		r.Get("/keywords", handlers.keywordHandler.getAllKeywords())
		r.Get("/keywords/projects/{projectID}", handlers.keywordHandler.getByProject())
		r.Get("/keywords/{keywordID}/projects", handlers.keywordHandler.getProjects())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Put("/profile", handlers.userHandler.updateProfile())
		r.Delete("/users/{userID}", handlers.userHandler.deleteUser())

		r.Post("/courses", handlers.courseHandler.createCourse())
		r.Delete("/courses/{courseID}", handlers.courseHandler.deleteCourse())

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/all", handlers.projectHandler.getAllProjects())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/projects/{projectID}/proposal", handlers.projectHandler.uploadProposal())
		r.Post("/projects/{projectID}/image", handlers.projectHandler.uploadImage())
		r.Patch("/projects/{projectID}/status", handlers.projectHandler.updateStatus())

		r.Post("/projects/{projectID}/impact-indicators", handlers.indicatorHandler.createIndicators())
		r.Put("/projects/{projectID}/impact-indicators/{indicatorID}", handlers.indicatorHandler.updateIndicator())
		r.Delete("/projects/{projectID}/impact-indicators/{indicatorID}", handlers.indicatorHandler.deleteIndicator())

		r.Post("/keywords/projects/{projectID}", handlers.keywordHandler.addToProject())
		r.Delete("/keywords/{keywordID}/projects/{projectID}", handlers.keywordHandler.removeFromProject())
	})
}
