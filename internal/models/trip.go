package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Trip struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`

	// Owner of the trip. Set once at creation and never reassigned.
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`

	City      string  `bson:"city" json:"city"`
	Country   string  `bson:"country" json:"country"`
	Price     float64 `bson:"price" json:"price"`
	Latitude  float64 `bson:"latitude" json:"lat"`
	Longitude float64 `bson:"longitude" json:"lon"`

	ImagePath string `bson:"image_path,omitempty" json:"imagePath,omitempty"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`
}
