package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Feedback is the immutable audit record written once per submission.
// DriverID holds the reviewed user's username.
type Feedback struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string        `bson:"eventId" json:"eventId"`
	DriverID   string        `bson:"driverId" json:"driverId"`
	Review     string        `bson:"review" json:"review"`
	Rating     float64       `bson:"rating" json:"rating"`
	Sentiment  string        `bson:"sentiment" json:"sentiment"`
	Confidence float64       `bson:"confidence" json:"confidence"`
	EloChange  int           `bson:"eloChange" json:"eloChange"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
