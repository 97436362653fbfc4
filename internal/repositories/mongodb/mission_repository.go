package mongodb

import (
	"context"
	"time"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure MissionRepository implements the interface
var _ repositories.MissionRepository = (*MissionRepository)(nil)

// MissionRepository handles MongoDB operations for Mission
type MissionRepository struct {
	collection *mongo.Collection
}

// NewMissionRepository creates a new MissionRepository
func NewMissionRepository(db *mongo.Database) *MissionRepository {
	return &MissionRepository{
		collection: db.Collection("missions"),
	}
}

// Create inserts a new mission
func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	mission.ID = primitive.NewObjectID()
	mission.CreatedAt = time.Now()
	mission.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, mission)
	return err
}

// FindByID finds a mission by ID
func (r *MissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error) {
	var mission models.Mission
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&mission)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &mission, nil
}

// FindByUserID finds a user's missions, newest first
func (r *MissionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Mission, error) {
	var missions []*models.Mission
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &missions); err != nil {
		return nil, err
	}
	if missions == nil {
		missions = []*models.Mission{}
	}
	return missions, nil
}

// Update updates an existing mission
func (r *MissionRepository) Update(ctx context.Context, mission *models.Mission) error {
	mission.UpdatedAt = time.Now()
	filter := bson.M{"_id": mission.ID}
	update := bson.M{"$set": mission}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// TransitionStatus flips a mission's status in one conditional write. The
// filter includes the expected current status, so a mission that already
// moved on matches nothing and mongo.ErrNoDocuments is returned.
func (r *MissionRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.MissionStatus) error {
	filter := bson.M{"_id": id, "status": from}
	set := bson.M{"status": to, "updatedAt": time.Now()}
	if to == models.MissionCompleted {
		set["completedAt"] = time.Now()
	}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
