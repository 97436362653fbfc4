package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkin records one daily check-in per user per calendar day.
// Day is stored as "2006-01-02" in UTC so the uniqueness check is a plain
// equality lookup.
type Checkin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Day       string             `bson:"day" json:"day"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CheckinDay formats a timestamp as the UTC calendar day used for the
// once-per-day lookup.
func CheckinDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
