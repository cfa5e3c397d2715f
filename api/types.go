package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler      userHandler
	courseHandler    courseHandler
	projectHandler   projectHandler
	keywordHandler   keywordHandler
	indicatorHandler indicatorHandler
	healthHandler    healthHandler
}
