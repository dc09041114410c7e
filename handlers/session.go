package handlers

import (
	"context"
	"errors"
	"net/http"

	"itufk/services/session"
	"itufk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionService is the part of session.Manager the HTTP layer uses.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*session.LoginResponse, error)
	Logout(ctx context.Context, memberID string) error
}

type SessionHandler struct {
	Sessions SessionService
}

func NewSessionHandler(sessions SessionService) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	res, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
		return
	}
	if err != nil {
		getLogger(c).Error("Login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed, please try again", "")
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	if err := h.Sessions.Logout(c.Request.Context(), memberID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}
