package memberRepo

import (
	"context"
	"errors"

	"itufk/models"
)

// ErrMemberNotFound is returned when no member document matches.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepository defines methods for member data access.
type MemberRepository interface {
	// ListMembers retrieves every member without credentials or push tokens.
	ListMembers(ctx context.Context) ([]models.Member, error)
	// GetByID retrieves a member (safe view) by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// GetByEmail retrieves a member including the password hash, for login.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	// GetPushTokens returns the FCM registration tokens of a member.
	GetPushTokens(ctx context.Context, id string) ([]string, error)
	// AddPushToken registers a token; registering the same token twice is a no-op.
	AddPushToken(ctx context.Context, id, token string) error
	// RemovePushToken unregisters a token.
	RemovePushToken(ctx context.Context, id, token string) error
}
