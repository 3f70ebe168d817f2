package repository

import (
	"context"
	"time"

	"tukerank-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database, collection string) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection(collection),
	}
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return err
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// ListByDriver returns every record for username in natural order.
func (r *FeedbackRepo) ListByDriver(ctx context.Context, username string) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"driverId": username})
}

func (r *FeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{})
}

func (r *FeedbackRepo) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// EnsureIndexes creates the driverId lookup index.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "driverId", Value: 1}},
	})
	return err
}
