package handlers

import (
	"itufk/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth middleware.Authenticator

	// Session endpoints
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Event endpoints
	ListEventsHandler    gin.HandlerFunc
	MarkAnnouncedHandler gin.HandlerFunc

	// Push token endpoints
	RegisterPushTokenHandler   gin.HandlerFunc
	UnregisterPushTokenHandler gin.HandlerFunc

	// Reminder endpoints
	ListRemindersHandler gin.HandlerFunc
	GetScheduleHandler   gin.HandlerFunc
	ScanNowHandler       gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
