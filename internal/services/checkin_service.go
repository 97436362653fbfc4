package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CheckinServiceImpl implements CheckinService
var _ CheckinService = (*CheckinServiceImpl)(nil)

// CheckinServiceImpl implements the once-per-day check-in flow. The ledger
// itself has no notion of a calendar day; the pre-check lives here, at the
// call site, and the crediting is delegated to the ledger.
type CheckinServiceImpl struct {
	checkinRepo repositories.CheckinRepository
	ledger      LedgerService
}

// NewCheckinService creates a new CheckinServiceImpl
func NewCheckinService(checkinRepo repositories.CheckinRepository, ledger LedgerService) *CheckinServiceImpl {
	return &CheckinServiceImpl{
		checkinRepo: checkinRepo,
		ledger:      ledger,
	}
}

// CheckIn records today's check-in and credits the DAILY_CHECK_IN reward.
// A second call on the same UTC day fails with ErrAlreadyCheckedIn before
// any write.
func (s *CheckinServiceImpl) CheckIn(ctx context.Context, userID primitive.ObjectID) (int, error) {
	day := models.CheckinDay(time.Now())

	_, err := s.checkinRepo.FindByUserAndDay(ctx, userID, day)
	if err == nil {
		return 0, models.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	checkin := &models.Checkin{UserID: userID, Day: day}
	if err := s.checkinRepo.Create(ctx, checkin); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	newBalance, err := s.ledger.AwardTokensForAction(ctx, userID, rewards.ActionDailyCheckIn)
	if err != nil {
		slog.Warn("check-in recorded but reward credit failed",
			"userId", userID.Hex(), "day", day)
		return 0, err
	}

	slog.Info("daily check-in credited", "userId", userID.Hex(), "day", day, "newBalance", newBalance)
	return newBalance, nil
}

// HasCheckedInToday reports whether the user already checked in on the
// current UTC day.
func (s *CheckinServiceImpl) HasCheckedInToday(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	day := models.CheckinDay(time.Now())
	_, err := s.checkinRepo.FindByUserAndDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return true, nil
}
