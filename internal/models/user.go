package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultElo is the rating assumed for a user document without an elo field.
const DefaultElo = 1000

type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string        `bson:"username" json:"username"`
	Elo      *int          `bson:"elo,omitempty" json:"elo,omitempty"`
}

// CurrentElo returns the stored rating or DefaultElo when the field is absent.
func (u *User) CurrentElo() int {
	if u.Elo == nil {
		return DefaultElo
	}
	return *u.Elo
}
