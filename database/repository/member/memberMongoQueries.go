// File: database/repository/member/memberMongoQueries.go
package memberRepo

import (
	"context"
	"fmt"
	"time"

	"itufk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// safeProjection hides credentials and push tokens from general reads.
var safeProjection = bson.M{"passwordHash": 0, "pushTokens": 0}

func (r *MongoMemberRepo) ListMembers(ctx context.Context) ([]models.Member, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(safeProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}

func (r *MongoMemberRepo) GetByID(ctx context.Context, id string) (*models.Member, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	opts := options.FindOne().SetProjection(safeProjection)
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&member); err != nil {
		return nil, notFoundOr(err, "failed to fetch member with id %s", id)
	}
	return &member, nil
}

func (r *MongoMemberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	opts := options.FindOne().SetProjection(bson.M{"pushTokens": 0})
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&member); err != nil {
		return nil, notFoundOr(err, "failed to fetch member with email %s", email)
	}
	return &member, nil
}

func (r *MongoMemberRepo) GetPushTokens(ctx context.Context, id string) ([]string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	opts := options.FindOne().SetProjection(bson.M{"id": 1, "pushTokens": 1})
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&member); err != nil {
		return nil, notFoundOr(err, "failed to fetch push tokens for member %s", id)
	}
	return member.PushTokens, nil
}
