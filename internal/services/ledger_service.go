package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure LedgerServiceImpl implements LedgerService
var _ LedgerService = (*LedgerServiceImpl)(nil)

// LedgerServiceImpl implements LedgerService over the document store.
//
// The store gives no cross-row atomicity, so every operation here is a
// sequence of independent round trips. Two rules keep the trail honest:
// the balance write always precedes the transaction append, and partial
// failures are surfaced to the caller rather than retried or rolled back.
// Concurrent credits to the same user can still lose an increment
// (read-modify-write over two round trips); fixing that needs an atomic
// server-side increment, which is outside this component.
type LedgerServiceImpl struct {
	userRepo        repositories.UserRepository
	transactionRepo repositories.TransactionRepository
	missionRepo     repositories.MissionRepository
	catalog         rewards.Catalog
}

// NewLedgerService creates a new LedgerServiceImpl with an injected reward
// catalog.
func NewLedgerService(userRepo repositories.UserRepository, transactionRepo repositories.TransactionRepository, missionRepo repositories.MissionRepository, catalog rewards.Catalog) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		missionRepo:     missionRepo,
		catalog:         catalog,
	}
}

// GetBalance reads the user's current token balance. A missing account reads
// as 0 (uninitialized, not an error).
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, userID primitive.ObjectID) (int, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return user.TokenBalance, nil
}

// AwardTokens credits amount to the user's balance and appends an earn
// transaction.
func (s *LedgerServiceImpl) AwardTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error) {
	if err := validateMutation(amount, description); err != nil {
		return 0, err
	}
	return s.applyDelta(ctx, userID, amount, models.KindEarn, description, relatedEntityID)
}

// SpendTokens debits amount from the user's balance and appends a spend
// transaction. The floor at zero is enforced by rejecting the operation, not
// by clamping.
func (s *LedgerServiceImpl) SpendTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error) {
	if err := validateMutation(amount, description); err != nil {
		return 0, err
	}
	return s.applyDelta(ctx, userID, -amount, models.KindSpend, description, relatedEntityID)
}

// PurchaseWithTokens debits amount for a reward-shop item.
func (s *LedgerServiceImpl) PurchaseWithTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, itemID string) (int, error) {
	if err := validateMutation(amount, description); err != nil {
		return 0, err
	}
	return s.applyDelta(ctx, userID, -amount, models.KindPurchase, description, itemID)
}

// GiftTokens debits the giver, then credits the receiver, as two gift
// transactions. The debit happens first so a crash between the two steps
// never creates tokens out of thin air; a failed credit after a successful
// debit is surfaced for out-of-band reconciliation.
func (s *LedgerServiceImpl) GiftTokens(ctx context.Context, fromUserID, toUserID primitive.ObjectID, amount int, description string) (int, error) {
	if err := validateMutation(amount, description); err != nil {
		return 0, err
	}

	newBalance, err := s.applyDelta(ctx, fromUserID, -amount, models.KindGift, description, toUserID.Hex())
	if err != nil {
		return 0, err
	}

	if _, err := s.applyDelta(ctx, toUserID, amount, models.KindGift, description, fromUserID.Hex()); err != nil {
		slog.Warn("gift debited but credit failed, manual reconciliation required",
			"fromUserId", fromUserID.Hex(), "toUserId", toUserID.Hex(), "amount", amount)
		return newBalance, fmt.Errorf("gift credit failed after debit: %w", err)
	}

	return newBalance, nil
}

// AwardTokensForAction credits the catalog value for a gamified action.
// Unknown actions fail before any write. Callers own any once-per-day
// semantics; calling this twice in a day credits twice.
func (s *LedgerServiceImpl) AwardTokensForAction(ctx context.Context, userID primitive.ObjectID, action string) (int, error) {
	points, ok := s.catalog.Lookup(action)
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownRewardAction, action)
	}
	return s.AwardTokens(ctx, userID, points, "Reward for "+action, "")
}

// CompleteMissionAndAward flips the mission to completed, then credits its
// token reward. The status flip comes first: a mission stuck completed
// without credit is recoverable by support tooling, while a credited mission
// left active could be credited again.
func (s *LedgerServiceImpl) CompleteMissionAndAward(ctx context.Context, missionID primitive.ObjectID) (int, error) {
	mission, err := s.missionRepo.FindByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, models.ErrMissionNotFound
		}
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	if mission.Status != models.MissionActive || mission.CurrentProgress < mission.TargetValue {
		return 0, models.ErrMissionNotCompletable
	}

	err = s.missionRepo.TransitionStatus(ctx, missionID, models.MissionActive, models.MissionCompleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, models.ErrMissionNotCompletable
		}
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	description := fmt.Sprintf("Mission completed: %s", mission.Title)
	newBalance, err := s.AwardTokens(ctx, mission.UserID, mission.TokenReward, description, missionID.Hex())
	if err != nil {
		slog.Warn("mission completed but token award failed, manual reconciliation required",
			"missionId", missionID.Hex(), "userId", mission.UserID.Hex(), "tokenReward", mission.TokenReward)
		return 0, fmt.Errorf("mission marked completed but award failed: %w", err)
	}

	slog.Info("mission completed and credited",
		"missionId", missionID.Hex(), "userId", mission.UserID.Hex(), "tokenReward", mission.TokenReward)
	return newBalance, nil
}

// GetTransactions lists a user's transactions, newest first.
func (s *LedgerServiceImpl) GetTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.TokenTransaction, error) {
	transactions, err := s.transactionRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return transactions, nil
}

// Catalog returns the reward catalog the service was built with.
func (s *LedgerServiceImpl) Catalog() rewards.Catalog {
	return s.catalog
}

// applyDelta performs the read, the balance write, and the transaction
// append, in that order. The append only happens after the balance write
// succeeded, so a crash between the two leaves an applied balance without an
// audit row (detectable by a reconciliation scan) rather than an audit row
// for a balance that was never applied.
func (s *LedgerServiceImpl) applyDelta(ctx context.Context, userID primitive.ObjectID, delta int, kind models.TransactionKind, description, relatedEntityID string) (int, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, models.ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	balanceBefore := user.TokenBalance
	newBalance := balanceBefore + delta
	if newBalance < 0 {
		return 0, fmt.Errorf("%w: have %d, need %d", models.ErrInsufficientBalance, balanceBefore, -delta)
	}

	if err := s.userRepo.SetTokenBalance(ctx, userID, newBalance); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, models.ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	transaction := &models.TokenTransaction{
		TransactionRef:  uuid.NewString(),
		UserID:          userID,
		Amount:          delta,
		Kind:            kind,
		BalanceBefore:   balanceBefore,
		BalanceAfter:    newBalance,
		Description:     description,
		RelatedEntityID: relatedEntityID,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		slog.Error("transaction append failed after balance update, manual reconciliation required",
			"userId", userID.Hex(), "delta", delta, "kind", string(kind), "balanceAfter", newBalance)
		return 0, fmt.Errorf("%w: transaction append failed after balance update: %v", models.ErrStoreUnavailable, err)
	}

	return newBalance, nil
}

func validateMutation(amount int, description string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", models.ErrInvalidAmount, amount)
	}
	if strings.TrimSpace(description) == "" {
		return models.ErrEmptyDescription
	}
	return nil
}
