package routes

import (
	"time"

	"itufk/handlers"
	"itufk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers login and logout.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/session")
	{
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.JWTAuthMemberMiddleware(hb.Auth))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterEventRoutes registers event listing and announcement flags.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.Use(middleware.JWTAuthMemberMiddleware(hb.Auth))
		api.GET("", hb.ListEventsHandler)
		api.PATCH("/:id/announced", hb.MarkAnnouncedHandler)
	}
}

// RegisterMemberRoutes registers the caller's push token endpoints.
func RegisterMemberRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/members/me")
	{
		api.Use(middleware.JWTAuthMemberMiddleware(hb.Auth))
		api.PUT("/push-tokens", hb.RegisterPushTokenHandler)
		api.DELETE("/push-tokens", hb.UnregisterPushTokenHandler)
	}
}

// RegisterReminderRoutes registers reminder history and scheduler endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthMemberMiddleware(hb.Auth))
		api.GET("", hb.ListRemindersHandler)
		api.GET("/schedule", hb.GetScheduleHandler)
		api.POST("/scan", hb.ScanNowHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterMemberRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
