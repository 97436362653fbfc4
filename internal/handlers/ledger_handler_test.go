package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kiweel/kiweel-backend/internal/handlers"
	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"github.com/kiweel/kiweel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeLedgerService implements services.LedgerService with canned behavior.
type fakeLedgerService struct {
	balances map[primitive.ObjectID]int
	catalog  rewards.Catalog
}

var _ services.LedgerService = (*fakeLedgerService)(nil)

func (f *fakeLedgerService) GetBalance(ctx context.Context, userID primitive.ObjectID) (int, error) {
	return f.balances[userID], nil
}

func (f *fakeLedgerService) AwardTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error) {
	if amount <= 0 {
		return 0, models.ErrInvalidAmount
	}
	f.balances[userID] += amount
	return f.balances[userID], nil
}

func (f *fakeLedgerService) SpendTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, relatedEntityID string) (int, error) {
	if amount > f.balances[userID] {
		return 0, models.ErrInsufficientBalance
	}
	f.balances[userID] -= amount
	return f.balances[userID], nil
}

func (f *fakeLedgerService) PurchaseWithTokens(ctx context.Context, userID primitive.ObjectID, amount int, description, itemID string) (int, error) {
	return f.SpendTokens(ctx, userID, amount, description, itemID)
}

func (f *fakeLedgerService) GiftTokens(ctx context.Context, fromUserID, toUserID primitive.ObjectID, amount int, description string) (int, error) {
	newBalance, err := f.SpendTokens(ctx, fromUserID, amount, description, "")
	if err != nil {
		return 0, err
	}
	f.balances[toUserID] += amount
	return newBalance, nil
}

func (f *fakeLedgerService) AwardTokensForAction(ctx context.Context, userID primitive.ObjectID, action string) (int, error) {
	points, ok := f.catalog.Lookup(action)
	if !ok {
		return 0, models.ErrUnknownRewardAction
	}
	return f.AwardTokens(ctx, userID, points, action, "")
}

func (f *fakeLedgerService) CompleteMissionAndAward(ctx context.Context, missionID primitive.ObjectID) (int, error) {
	return 0, models.ErrMissionNotFound
}

func (f *fakeLedgerService) GetTransactions(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.TokenTransaction, error) {
	return []*models.TokenTransaction{}, nil
}

func (f *fakeLedgerService) Catalog() rewards.Catalog {
	return f.catalog
}

func newTestRouter(svc services.LedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewLedgerHandler(svc)
	router := gin.New()
	router.GET("/tokens/balance/:userId", handler.GetBalance)
	router.POST("/tokens/spend", handler.SpendTokens)
	router.POST("/tokens/actions", handler.AwardTokensForAction)
	return router
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &fakeLedgerService{
		balances: map[primitive.ObjectID]int{userID: 25},
		catalog:  rewards.NewCatalog(rewards.DefaultValues()),
	}
	router := newTestRouter(svc)

	t.Run("returns the balance", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tokens/balance/"+userID.Hex(), nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["balance"].(float64) != 25 {
			t.Errorf("Expected balance 25, got %v", body["balance"])
		}
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tokens/balance/not-an-id", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestLedgerHandler_SpendTokens(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &fakeLedgerService{
		balances: map[primitive.ObjectID]int{userID: 10},
		catalog:  rewards.NewCatalog(rewards.DefaultValues()),
	}
	router := newTestRouter(svc)

	t.Run("insufficient balance maps to 409", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{
			"userId":      userID.Hex(),
			"amount":      50,
			"description": "reward",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tokens/spend", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tokens/spend", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestLedgerHandler_AwardTokensForAction(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := &fakeLedgerService{
		balances: map[primitive.ObjectID]int{},
		catalog:  rewards.NewCatalog(rewards.DefaultValues()),
	}
	router := newTestRouter(svc)

	t.Run("unknown action maps to 400", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{
			"userId": userID.Hex(),
			"action": "UNKNOWN_KEY",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tokens/actions", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("known action credits the catalog value", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{
			"userId": userID.Hex(),
			"action": rewards.ActionWorkoutCompleted,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tokens/actions", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["newBalance"].(float64) != 20 {
			t.Errorf("Expected newBalance 20, got %v", body["newBalance"])
		}
	})
}
