package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCheckinFixture() (*services.CheckinServiceImpl, *fakeUserRepo, *fakeTransactionRepo, *fakeCheckinRepo) {
	ledger, userRepo, transactionRepo, _ := newLedgerFixture()
	checkinRepo := &fakeCheckinRepo{}
	svc := services.NewCheckinService(checkinRepo, ledger)
	return svc, userRepo, transactionRepo, checkinRepo
}

func TestCheckinService_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("first check-in of the day credits the reward", func(t *testing.T) {
		svc, userRepo, transactionRepo, checkinRepo := newCheckinFixture()
		userID := seedUser(userRepo, 0)

		newBalance, err := svc.CheckIn(ctx, userID)
		if err != nil {
			t.Fatalf("CheckIn failed: %v", err)
		}
		if newBalance != 5 {
			t.Errorf("Expected balance 5, got %d", newBalance)
		}
		if len(checkinRepo.checkins) != 1 {
			t.Errorf("Expected 1 check-in record, got %d", len(checkinRepo.checkins))
		}
		if len(transactionRepo.byUser(userID)) != 1 {
			t.Errorf("Expected 1 transaction, got %d", len(transactionRepo.byUser(userID)))
		}
	})

	t.Run("second check-in same day is rejected before any write", func(t *testing.T) {
		svc, userRepo, transactionRepo, checkinRepo := newCheckinFixture()
		userID := seedUser(userRepo, 0)

		if _, err := svc.CheckIn(ctx, userID); err != nil {
			t.Fatalf("first CheckIn failed: %v", err)
		}
		_, err := svc.CheckIn(ctx, userID)
		if !errors.Is(err, models.ErrAlreadyCheckedIn) {
			t.Fatalf("Expected ErrAlreadyCheckedIn, got %v", err)
		}
		if len(checkinRepo.checkins) != 1 {
			t.Errorf("Expected 1 check-in record, got %d", len(checkinRepo.checkins))
		}
		if len(transactionRepo.byUser(userID)) != 1 {
			t.Errorf("Expected 1 transaction, got %d", len(transactionRepo.byUser(userID)))
		}
	})

	t.Run("failed credit after recorded check-in is surfaced", func(t *testing.T) {
		svc, _, transactionRepo, checkinRepo := newCheckinFixture()
		unknownUserID := primitive.NewObjectID()

		_, err := svc.CheckIn(ctx, unknownUserID)
		if !errors.Is(err, models.ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}

		// The check-in row already landed; the credit failure is surfaced,
		// not compensated.
		if len(checkinRepo.checkins) != 1 {
			t.Errorf("Expected 1 check-in record, got %d", len(checkinRepo.checkins))
		}
		if len(transactionRepo.byUser(unknownUserID)) != 0 {
			t.Error("Expected no transactions after failed credit")
		}
	})

	t.Run("failed check-in write surfaces ErrStoreUnavailable with no credit", func(t *testing.T) {
		svc, userRepo, transactionRepo, checkinRepo := newCheckinFixture()
		userID := seedUser(userRepo, 0)
		checkinRepo.createErr = errors.New("insert failed")

		if _, err := svc.CheckIn(ctx, userID); !errors.Is(err, models.ErrStoreUnavailable) {
			t.Fatalf("Expected ErrStoreUnavailable, got %v", err)
		}
		if len(checkinRepo.checkins) != 0 {
			t.Errorf("Expected no check-in records, got %d", len(checkinRepo.checkins))
		}
		if len(transactionRepo.byUser(userID)) != 0 {
			t.Error("Expected no transactions after failed check-in write")
		}
	})

	t.Run("store failure on lookup surfaces ErrStoreUnavailable", func(t *testing.T) {
		svc, userRepo, _, checkinRepo := newCheckinFixture()
		userID := seedUser(userRepo, 0)
		checkinRepo.findErr = errors.New("connection reset")

		if _, err := svc.CheckIn(ctx, userID); !errors.Is(err, models.ErrStoreUnavailable) {
			t.Errorf("Expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestCheckinService_HasCheckedInToday(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _ := newCheckinFixture()
	userID := seedUser(userRepo, 0)

	checkedIn, err := svc.HasCheckedInToday(ctx, userID)
	if err != nil {
		t.Fatalf("HasCheckedInToday failed: %v", err)
	}
	if checkedIn {
		t.Error("Expected no check-in yet")
	}

	if _, err := svc.CheckIn(ctx, userID); err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	checkedIn, err = svc.HasCheckedInToday(ctx, userID)
	if err != nil {
		t.Fatalf("HasCheckedInToday failed: %v", err)
	}
	if !checkedIn {
		t.Error("Expected check-in to be visible")
	}
}
