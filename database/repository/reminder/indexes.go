package reminderRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReminderRepo) ensureIndexes(uniqueDay bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "channel", Value: 1}, {Key: "eventId", Value: 1}}},
	}
	if uniqueDay {
		indexModels = append(indexModels, mongo.IndexModel{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "channel", Value: 1},
				{Key: "eventId", Value: 1},
				{Key: "day", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("reminder_day_bucket"),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reminder indexes: %w", err)
	}
	return nil
}
