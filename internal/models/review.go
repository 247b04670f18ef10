package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`

	// Owner of the review. Set once at creation and never reassigned.
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`

	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
	Rating  int    `bson:"rating" json:"rating"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`
}
