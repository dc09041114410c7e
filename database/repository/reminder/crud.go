package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"itufk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReminderRepo) Query(ctx context.Context, userID string, channel models.Channel, eventID string) ([]models.ReminderRecord, error) {
	filter := bson.M{"userId": userID, "channel": channel, "eventId": eventID}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.ReminderRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return records, nil
}

func (r *mongoReminderRepo) Insert(ctx context.Context, record models.ReminderRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if record.Day == "" {
		record.Day = record.CreatedAt.Format(models.EventDateLayout)
	}

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateReminder
		}
		return "", fmt.Errorf("failed to insert reminder: %w", err)
	}
	return record.ID, nil
}

func (r *mongoReminderRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.ReminderRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	records := []models.ReminderRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return records, nil
}
