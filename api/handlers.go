package api

import (
	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/services"
	"github.com/conectaext/conecta-backend/storage"
)

// initializeHandlers builds the service layer on top of the repositories and
// returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, files *storage.Client, tokens *auth.TokenIssuer) *routeHandlers {
	userService := services.NewUserService(db.UserRepo(), tokens)
	courseService := services.NewCourseService(db.CourseRepo())
	projectService := services.NewProjectService(db.ProjectRepo(), db.CourseRepo())
	keywordService := services.NewKeywordService(db.KeywordRepo(), db.ProjectRepo())
	indicatorService := services.NewIndicatorService(db.IndicatorRepo(), db.ProjectRepo())

	return &routeHandlers{
		userHandler:      newUserHandler(userService),
		courseHandler:    newCourseHandler(courseService),
		projectHandler:   newProjectHandler(projectService, files),
		keywordHandler:   newKeywordHandler(keywordService),
		indicatorHandler: newIndicatorHandler(indicatorService),
		healthHandler:    newHealthHandler(db),
	}
}
