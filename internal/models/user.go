package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`

	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password hash in JSON
}

// Owner is the display form of a user embedded in trip and review responses:
// id and handle only, never the email or credential.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PublicOwner returns the display form of the user.
func (u User) PublicOwner() Owner {
	return Owner{ID: u.ID.Hex(), Username: u.Username}
}
