package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionStatus represents the lifecycle state of a mission.
type MissionStatus string

const (
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionExpired   MissionStatus = "expired"
	MissionFailed    MissionStatus = "failed"
)

// Mission is a user-scoped, time-boxed goal with a one-time token payout.
// A mission transitions into completed exactly once; the ledger service
// issues the crediting transaction at that moment.
type Mission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetValue     int                `bson:"targetValue" json:"targetValue"`
	CurrentProgress int                `bson:"currentProgress" json:"currentProgress"`
	TokenReward     int                `bson:"tokenReward" json:"tokenReward"`
	Status          MissionStatus      `bson:"status" json:"status"`
	ExpiresAt       time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CompletedAt     time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
