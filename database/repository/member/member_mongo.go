package memberRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itufk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoMemberRepo implements MemberRepository using MongoDB.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a new instance of MemberRepository using MongoDB.
func NewMongoMemberRepo(db *mongo.Database) MemberRepository {
	repo := &MongoMemberRepo{coll: db.Collection("members")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("memberRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// newContext bounds a single store call when the caller's context has no deadline.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrMemberNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
