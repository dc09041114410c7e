// File: database/repository/member/memberMongoCrud.go
package memberRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoMemberRepo) AddPushToken(ctx context.Context, id, token string) error {
	// $addToSet keeps tokens unique
	return r.updateOne(ctx, id, bson.M{
		"$addToSet": bson.M{"pushTokens": token},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (r *MongoMemberRepo) RemovePushToken(ctx context.Context, id, token string) error {
	return r.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"pushTokens": token},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (r *MongoMemberRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update member with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}
