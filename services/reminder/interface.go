package reminder

import (
	"context"

	"itufk/models"
)

// EventSource supplies the events a scan evaluates.
type EventSource interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// MemberSource supplies the members captain and co-captain ids resolve against.
type MemberSource interface {
	ListMembers(ctx context.Context) ([]models.Member, error)
}

// RecordStore persists reminder records.
type RecordStore interface {
	Query(ctx context.Context, userID string, channel models.Channel, eventID string) ([]models.ReminderRecord, error)
	Insert(ctx context.Context, record models.ReminderRecord) (string, error)
}

// TokenRegistry resolves a member's push delivery addresses.
type TokenRegistry interface {
	GetPushTokens(ctx context.Context, userID string) ([]string, error)
}
