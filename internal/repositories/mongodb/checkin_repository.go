package mongodb

import (
	"context"
	"time"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure CheckinRepository implements the interface
var _ repositories.CheckinRepository = (*CheckinRepository)(nil)

// CheckinRepository handles MongoDB operations for Checkin
type CheckinRepository struct {
	collection *mongo.Collection
}

// NewCheckinRepository creates a new CheckinRepository
func NewCheckinRepository(db *mongo.Database) *CheckinRepository {
	return &CheckinRepository{
		collection: db.Collection("checkins"),
	}
}

// Create inserts a new check-in record
func (r *CheckinRepository) Create(ctx context.Context, checkin *models.Checkin) error {
	checkin.ID = primitive.NewObjectID()
	checkin.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, checkin)
	return err
}

// FindByUserAndDay finds a user's check-in for a given UTC calendar day
func (r *CheckinRepository) FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (*models.Checkin, error) {
	var checkin models.Checkin
	filter := bson.M{"userId": userID, "day": day}
	err := r.collection.FindOne(ctx, filter).Decode(&checkin)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &checkin, nil
}
