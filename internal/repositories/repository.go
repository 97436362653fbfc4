package repositories

import (
	"context"

	"github.com/kiweel/kiweel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user account data operations.
// The ledger mutates balances through SetTokenBalance only; the store offers
// no cross-row transaction, so every write here is an independent round trip.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetTokenBalance(ctx context.Context, id primitive.ObjectID, balance int) error
}

// TransactionRepository defines the interface for token transaction operations.
// Transactions are append-only: there is deliberately no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.TokenTransaction) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.TokenTransaction, error)
}

// MissionRepository defines the interface for mission data operations
type MissionRepository interface {
	Create(ctx context.Context, mission *models.Mission) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Mission, error)
	Update(ctx context.Context, mission *models.Mission) error
	// TransitionStatus flips a mission from one status to another in a single
	// conditional write. It returns mongo.ErrNoDocuments when the mission is
	// missing or no longer in the expected status, which is what makes the
	// one-time completion credit hold.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.MissionStatus) error
}

// CheckinRepository defines the interface for daily check-in operations
type CheckinRepository interface {
	Create(ctx context.Context, checkin *models.Checkin) error
	FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (*models.Checkin, error)
}
