package event

import (
	"context"
	"errors"
	"fmt"

	eventRepo "itufk/database/repository/event"
	"itufk/models"
	"itufk/utils"

	"go.uber.org/zap"
)

var (
	ErrNotCaptain     = errors.New("only the event captain or co-captain can update announcements")
	ErrUnknownChannel = errors.New("unknown announcement channel")
)

// EventService exposes events and their announcement flags.
type EventService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	MarkAnnounced(ctx context.Context, memberID, eventID string, channel models.Channel) (*models.Event, error)
}

type DefaultEventService struct {
	Repo eventRepo.EventRepository
}

func (s *DefaultEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.Repo.ListEvents(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	return events, nil
}

// MarkAnnounced records that the event was announced on a channel. Setting an
// already-set flag succeeds without a write.
func (s *DefaultEventService) MarkAnnounced(ctx context.Context, memberID, eventID string, channel models.Channel) (*models.Event, error) {
	if !channel.Valid() {
		return nil, ErrUnknownChannel
	}

	ev, err := s.Repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsLead(memberID) {
		return nil, ErrNotCaptain
	}
	if ev.Announced(channel) {
		return ev, nil
	}

	if err := s.Repo.MarkAnnounced(ctx, eventID, channel); err != nil {
		utils.GetLogger().Error("Failed to mark event announced",
			zap.String("eventId", eventID), zap.String("channel", string(channel)), zap.Error(err))
		return nil, err
	}

	switch channel {
	case models.ChannelGeneric:
		ev.GenericAnnounced = true
	case models.ChannelMessagingApp:
		ev.MessagingAppAnnounced = true
	case models.ChannelPhotoApp:
		ev.PhotoAppAnnounced = true
	}
	return ev, nil
}
