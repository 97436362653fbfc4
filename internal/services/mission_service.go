package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure MissionServiceImpl implements MissionService
var _ MissionService = (*MissionServiceImpl)(nil)

// MissionServiceImpl implements mission lifecycle and progress tracking.
// Completion crediting is delegated to the ledger so all token mutations
// flow through one place.
type MissionServiceImpl struct {
	missionRepo repositories.MissionRepository
	ledger      LedgerService
	catalog     rewards.Catalog
}

// NewMissionService creates a new MissionServiceImpl
func NewMissionService(missionRepo repositories.MissionRepository, ledger LedgerService, catalog rewards.Catalog) *MissionServiceImpl {
	return &MissionServiceImpl{
		missionRepo: missionRepo,
		ledger:      ledger,
		catalog:     catalog,
	}
}

// CreateMission creates a new active mission. A missing token reward falls
// back to the catalog's MISSION_COMPLETED value.
func (s *MissionServiceImpl) CreateMission(ctx context.Context, mission *models.Mission) error {
	if strings.TrimSpace(mission.Title) == "" {
		return models.ErrEmptyTitle
	}
	if mission.TargetValue <= 0 {
		return fmt.Errorf("%w: target value %d", models.ErrInvalidAmount, mission.TargetValue)
	}
	if mission.TokenReward <= 0 {
		if points, ok := s.catalog.Lookup(rewards.ActionMissionCompleted); ok {
			mission.TokenReward = points
		} else {
			return fmt.Errorf("%w: token reward %d", models.ErrInvalidAmount, mission.TokenReward)
		}
	}

	mission.Status = models.MissionActive
	mission.CurrentProgress = 0
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	slog.Info("mission created", "missionId", mission.ID.Hex(), "userId", mission.UserID.Hex(), "tokenReward", mission.TokenReward)
	return nil
}

// GetMissionByID retrieves a mission by its ID
func (s *MissionServiceImpl) GetMissionByID(ctx context.Context, id primitive.ObjectID) (*models.Mission, error) {
	mission, err := s.missionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrMissionNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return mission, nil
}

// GetMissionsByUserID retrieves a user's missions, newest first
func (s *MissionServiceImpl) GetMissionsByUserID(ctx context.Context, userID primitive.ObjectID) ([]*models.Mission, error) {
	missions, err := s.missionRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
	return missions, nil
}

// AddProgress advances an active mission's progress counter, clamped at the
// target. It never completes the mission itself: completion is an explicit
// call so the credit is issued exactly once, deliberately.
func (s *MissionServiceImpl) AddProgress(ctx context.Context, id primitive.ObjectID, amount int) (*models.Mission, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidAmount, amount)
	}

	mission, err := s.GetMissionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mission.Status != models.MissionActive {
		return nil, models.ErrMissionNotCompletable
	}

	if !mission.ExpiresAt.IsZero() && time.Now().After(mission.ExpiresAt) {
		if err := s.missionRepo.TransitionStatus(ctx, id, models.MissionActive, models.MissionExpired); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
		}
		return nil, models.ErrMissionNotCompletable
	}

	mission.CurrentProgress += amount
	if mission.CurrentProgress > mission.TargetValue {
		mission.CurrentProgress = mission.TargetValue
	}
	if err := s.missionRepo.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}

	return mission, nil
}

// CompleteMission completes the mission and credits its reward through the
// ledger. Returns the user's new balance.
func (s *MissionServiceImpl) CompleteMission(ctx context.Context, id primitive.ObjectID) (int, error) {
	return s.ledger.CompleteMissionAndAward(ctx, id)
}
