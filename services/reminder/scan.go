package reminder

import (
	"context"
	"errors"
	"time"

	reminderRepo "itufk/database/repository/reminder"
	"itufk/models"

	"go.uber.org/zap"
)

type scanStats struct {
	eligible   int
	dispatched int
	skipped    int
	failed     int
}

// RunDailyScan evaluates every event for the member running the scan. Only
// events the member leads are handled; reminders go to both the captain and a
// distinct co-captain. A failing triple is logged and the scan moves on.
func (s *Scheduler) RunDailyScan(ctx context.Context, events []models.Event, members []models.Member, currentMemberID string) {
	today := s.clock.Now()
	byID := make(map[string]*models.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}

	var stats scanStats
	for _, ev := range events {
		if ev.Date == "" || ev.FullyAnnounced() {
			continue
		}

		date, err := time.ParseInLocation(models.EventDateLayout, ev.Date, today.Location())
		if err != nil {
			s.logger.Warn("skipping event with unreadable date",
				zap.String("eventId", ev.ID), zap.String("date", ev.Date))
			continue
		}
		daysRemaining := DaysBetween(today, date)
		if !s.window.Contains(daysRemaining) {
			continue
		}

		recipients := leads(ev, byID)
		if !isLead(recipients, currentMemberID) {
			continue
		}
		stats.eligible++

		for _, ch := range models.Channels {
			if ev.Announced(ch) {
				continue
			}
			for _, m := range recipients {
				s.remind(ctx, m, ch, ev, daysRemaining, &stats)
			}
		}
	}

	s.logger.Info("announcement scan finished",
		zap.Int("events", len(events)),
		zap.Int("eligible", stats.eligible),
		zap.Int("dispatched", stats.dispatched),
		zap.Int("skipped", stats.skipped),
		zap.Int("failed", stats.failed))
}

func (s *Scheduler) remind(ctx context.Context, m *models.Member, ch models.Channel, ev models.Event, daysRemaining int, stats *scanStats) {
	log := s.logger.With(
		zap.String("userId", m.ID),
		zap.String("channel", string(ch)),
		zap.String("eventId", ev.ID))

	ok, err := s.dispatcher.ShouldNotify(ctx, m.ID, ch, ev.ID)
	if err != nil {
		stats.failed++
		log.Warn("idempotency check failed", zap.Error(err))
		return
	}
	if !ok {
		stats.skipped++
		return
	}

	title, body := reminderText(ev, ch, daysRemaining)
	err = s.dispatcher.Dispatch(ctx, m.ID, ch, ev.ID, title, body)
	switch {
	case errors.Is(err, reminderRepo.ErrDuplicateReminder):
		stats.skipped++
		log.Info("reminder already recorded by another client today")
	case err != nil:
		stats.failed++
		log.Warn("reminder dispatch failed", zap.Error(err))
	default:
		stats.dispatched++
	}
}

// leads resolves the captain and a distinct co-captain against the member list.
func leads(ev models.Event, byID map[string]*models.Member) []*models.Member {
	var out []*models.Member
	if m, ok := byID[ev.CaptainID]; ok && ev.CaptainID != "" {
		out = append(out, m)
	}
	if m, ok := byID[ev.CoCaptainID]; ok && ev.CoCaptainID != "" && ev.CoCaptainID != ev.CaptainID {
		out = append(out, m)
	}
	return out
}

func isLead(recipients []*models.Member, memberID string) bool {
	for _, m := range recipients {
		if m.ID == memberID {
			return true
		}
	}
	return false
}
