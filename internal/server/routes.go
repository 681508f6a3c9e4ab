package server

import (
	"github.com/labstack/echo/v4"

	"example.com/travel-buddy/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	tripHandler *handlers.TripHandler,
	activityHandler *handlers.ActivityHandler,
	cityHandler *handlers.CityHandler,
	itineraryHandler *handlers.ItineraryHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	itineraryRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	trips := api.Group("/trips", authMiddleware)
	trips.GET("", tripHandler.List)
	trips.POST("", tripHandler.Create)
	trips.GET("/:id", tripHandler.Get)
	trips.PUT("/:id", tripHandler.Update)
	trips.DELETE("/:id", tripHandler.Delete)
	trips.POST("/:id/activities/:activityId", tripHandler.AddActivity)
	trips.PATCH("/:id/status", tripHandler.UpdateStatus)
	trips.GET("/:id/export/json", tripHandler.ExportJSON)
	trips.GET("/:id/export/csv", tripHandler.ExportCSV)

	activities := api.Group("/activities")
	activities.GET("", activityHandler.List)
	activities.GET("/types", activityHandler.ListTypes)
	activities.GET("/city/:city", activityHandler.ListByCity)
	activities.GET("/type/:type", activityHandler.ListByType)
	activities.GET("/:id", activityHandler.Get)
	activities.POST("", activityHandler.Create, authMiddleware)
	activities.PUT("/:id", activityHandler.Update, authMiddleware)
	activities.DELETE("/:id", activityHandler.Delete, authMiddleware)

	cities := api.Group("/cities")
	cities.GET("", cityHandler.List)
	cities.GET("/name/:name", cityHandler.GetByName)
	cities.GET("/:id", cityHandler.Get)

	itineraryGroup := api.Group("/itinerary", itineraryRateLimiter)
	itineraryGroup.POST("", itineraryHandler.Build)
	itineraryGroup.GET("/types", itineraryHandler.Types)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
