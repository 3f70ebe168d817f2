package repository

import (
	"context"
	"errors"

	"tukerank-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(db *mongo.Database, collection string) *UserRepo {
	return &UserRepo{
		collection: db.Collection(collection),
	}
}

// FindByUsername returns nil, nil when no user matches.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CompareAndSetElo writes next only while the stored elo still equals
// expected (nil meaning the field is absent). It reports whether the write
// applied.
func (r *UserRepo) CompareAndSetElo(ctx context.Context, id bson.ObjectID, expected *int, next int) (bool, error) {
	filter := bson.M{"_id": id}
	if expected == nil {
		filter["elo"] = bson.M{"$exists": false}
	} else {
		filter["elo"] = *expected
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"elo": next},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// EnsureIndexes creates the unique username index.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
