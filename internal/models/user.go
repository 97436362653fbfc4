package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a marketplace user (client or wellness professional)
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Role         string             `bson:"role" json:"role"` // "client" or "professional"
	TokenBalance int                `bson:"tokenBalance" json:"tokenBalance"`
	LastActivity time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
