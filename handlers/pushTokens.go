package handlers

import (
	"context"
	"errors"
	"net/http"

	memberRepo "itufk/database/repository/member"
	"itufk/models"
	"itufk/utils"

	"github.com/gin-gonic/gin"
)

// PushTokenStore registers FCM tokens on member documents.
type PushTokenStore interface {
	AddPushToken(ctx context.Context, id, token string) error
	RemovePushToken(ctx context.Context, id, token string) error
}

type PushTokenHandler struct {
	Members PushTokenStore
}

func NewPushTokenHandler(members PushTokenStore) *PushTokenHandler {
	return &PushTokenHandler{Members: members}
}

func (h *PushTokenHandler) RegisterPushTokenHandler(c *gin.Context) {
	h.updateToken(c, h.Members.AddPushToken, "Push token registered")
}

func (h *PushTokenHandler) UnregisterPushTokenHandler(c *gin.Context) {
	h.updateToken(c, h.Members.RemovePushToken, "Push token removed")
}

func (h *PushTokenHandler) updateToken(c *gin.Context, apply func(ctx context.Context, id, token string) error, done string) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	var req models.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	err = apply(c.Request.Context(), memberID, req.Token)
	switch {
	case errors.Is(err, memberRepo.ErrMemberNotFound):
		utils.JSONError(c, http.StatusNotFound, "Member not found", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update push token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": done})
}
