package eventRepo

import (
	"context"
	"errors"

	"itufk/models"
)

// ErrEventNotFound is returned when no event document matches.
var ErrEventNotFound = errors.New("event not found")

// EventRepository defines methods for event data access.
type EventRepository interface {
	// ListEvents returns events in collection insertion order.
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// MarkAnnounced sets a channel flag to true. Flags are never cleared.
	MarkAnnounced(ctx context.Context, id string, channel models.Channel) error
}
