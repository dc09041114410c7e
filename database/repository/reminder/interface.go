package reminderRepo

import (
	"context"
	"errors"

	"itufk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateReminder is returned by Insert when the day-bucket index already
// holds a record for the same member, channel and event.
var ErrDuplicateReminder = errors.New("reminder already recorded today")

type ReminderRecordRepository interface {
	// Query returns every record for one (member, channel, event) triple.
	Query(ctx context.Context, userID string, channel models.Channel, eventID string) ([]models.ReminderRecord, error)
	// Insert stores a record and returns its ID.
	Insert(ctx context.Context, record models.ReminderRecord) (string, error)
	// ListByUser returns a member's records, newest first.
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.ReminderRecord, error)
}

type mongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo returns a ReminderRecordRepository backed by the
// reminder_notifications collection. With uniqueDay the store itself rejects a
// second record for the same triple and day.
func NewMongoReminderRepo(db *mongo.Database, uniqueDay bool) (ReminderRecordRepository, error) {
	r := &mongoReminderRepo{
		coll: db.Collection("reminder_notifications"),
	}
	if err := r.ensureIndexes(uniqueDay); err != nil {
		return nil, err
	}
	return r, nil
}
