package handlers

import (
	"errors"
	"net/http"

	eventRepo "itufk/database/repository/event"
	"itufk/models"
	"itufk/services/event"
	"itufk/utils"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	Events event.EventService
}

func NewEventHandler(events event.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	events, err := h.Events.ListEvents(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load events", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

type announcedRequest struct {
	Channel models.Channel `json:"channel" binding:"required"`
}

func (h *EventHandler) MarkAnnouncedHandler(c *gin.Context) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	var req announcedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ev, err := h.Events.MarkAnnounced(c.Request.Context(), memberID, c.Param("id"), req.Channel)
	switch {
	case errors.Is(err, event.ErrUnknownChannel):
		utils.JSONError(c, http.StatusBadRequest, "Unknown channel", string(req.Channel))
		return
	case errors.Is(err, event.ErrNotCaptain):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
		return
	case errors.Is(err, eventRepo.ErrEventNotFound):
		utils.JSONError(c, http.StatusNotFound, "Event not found", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update event", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": ev})
}
