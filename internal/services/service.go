package services

import (
	"context"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService is the single point of truth for reading a user's token
// balance and for producing paired (balance write, transaction append)
// mutations. No other component writes balances or transaction rows.
type LedgerService interface {
	// GetBalance reads the user's current balance. A missing account or
	// balance field reads as 0.
	GetBalance(ctx context.Context, userID primitive.ObjectID) (int, error)

	// AwardTokens credits amount to the user and appends an earn transaction.
	// The balance write happens first, the ledger append second; a failed
	// append after a successful balance write is surfaced, never rolled back.
	AwardTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error)

	// SpendTokens debits amount from the user. Fails with
	// ErrInsufficientBalance before any write when amount exceeds the balance.
	SpendTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error)

	// PurchaseWithTokens debits amount for a reward-shop item, recording a
	// purchase transaction referencing the item.
	PurchaseWithTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, itemID string) (int, error)

	// GiftTokens moves amount from one user to another as two gift
	// transactions, debit first. Returns the giver's new balance.
	GiftTokens(ctx context.Context, fromUserID, toUserID primitive.ObjectID, amount int, description string) (int, error)

	// AwardTokensForAction credits the catalog value for a gamified action.
	// It carries no per-day idempotency: callers that need once-per-day
	// semantics must pre-check, as CheckinService does.
	AwardTokensForAction(ctx context.Context, userID primitive.ObjectID, action string) (int, error)

	// CompleteMissionAndAward flips an eligible mission to completed, then
	// credits its token reward referencing the mission id.
	CompleteMissionAndAward(ctx context.Context, missionID primitive.ObjectID) (int, error)

	// GetTransactions lists a user's transactions, newest first.
	GetTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.TokenTransaction, error)

	// Catalog returns the reward catalog the service was built with.
	Catalog() rewards.Catalog
}

// CheckinService owns the once-per-day semantics for daily check-ins and
// delegates the actual crediting to the ledger.
type CheckinService interface {
	CheckIn(ctx context.Context, userID primitive.ObjectID) (int, error)
	HasCheckedInToday(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// MissionService handles mission lifecycle and progress tracking.
type MissionService interface {
	CreateMission(ctx context.Context, mission *models.Mission) error
	GetMissionByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error)
	GetMissionsByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Mission, error)
	AddProgress(ctx context.Context, id primitive.ObjectID, amount int) (*models.Mission, error)
	CompleteMission(ctx context.Context, id primitive.ObjectID) (int, error)
}
