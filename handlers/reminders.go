package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"itufk/models"
	"itufk/services/reminder"
	"itufk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHistory lists a member's stored reminders.
type ReminderHistory interface {
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.ReminderRecord, error)
}

// SchedulerLookup finds the scheduler bound to a signed-in member.
type SchedulerLookup interface {
	Scheduler(memberID string) (*reminder.Scheduler, bool)
}

type ReminderHandler struct {
	Records    ReminderHistory
	Schedulers SchedulerLookup
}

func NewReminderHandler(records ReminderHistory, schedulers SchedulerLookup) *ReminderHandler {
	return &ReminderHandler{Records: records, Schedulers: schedulers}
}

const defaultReminderLimit = 50

func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	limit := int64(defaultReminderLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", raw)
			return
		}
		limit = n
	}

	records, err := h.Records.ListByUser(c.Request.Context(), memberID, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load reminders", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": records})
}

type scheduleResponse struct {
	Running      bool       `json:"running"`
	NextFireTime *time.Time `json:"nextFireTime,omitempty"`
}

func (h *ReminderHandler) GetScheduleHandler(c *gin.Context) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	var res scheduleResponse
	if s, ok := h.Schedulers.Scheduler(memberID); ok && s.Running() {
		res.Running = true
		if next := s.NextFireTime(); !next.IsZero() {
			res.NextFireTime = &next
		}
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReminderHandler) ScanNowHandler(c *gin.Context) {
	memberID, err := memberIDFromContext(c)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", err.Error())
		return
	}

	s, ok := h.Schedulers.Scheduler(memberID)
	if !ok {
		utils.JSONError(c, http.StatusConflict, "No active reminder scheduler for this session", "")
		return
	}

	if err := s.ScanNow(c.Request.Context()); err != nil {
		getLogger(c).Error("Manual reminder scan failed", zap.String("memberId", memberID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Reminder scan failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder scan completed"})
}
