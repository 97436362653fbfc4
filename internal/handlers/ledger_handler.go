package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerHandler handles token ledger HTTP requests
type LedgerHandler struct {
	ledgerService services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// statusForError maps ledger errors to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrEmptyDescription),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrUnknownRewardAction):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrMissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, models.ErrAlreadyCheckedIn),
		errors.Is(err, models.ErrMissionNotCompletable):
		return http.StatusConflict
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetBalance handles GET /tokens/balance/:userId
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	balance, err := h.ledgerService.GetBalance(c, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to get balance: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "balance": balance})
}

// GetTransactions handles GET /tokens/transactions/:userId
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	transactions, err := h.ledgerService.GetTransactions(c, userID, page, limit)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to get transactions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetCatalog handles GET /tokens/catalog
func (h *LedgerHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledgerService.Catalog())
}

type mutateTokensRequest struct {
	UserID          string `json:"userId" binding:"required"`
	Amount          int    `json:"amount" binding:"required"`
	Description     string `json:"description" binding:"required"`
	RelatedEntityID string `json:"relatedEntityId"`
}

// AwardTokens handles POST /tokens/award
func (h *LedgerHandler) AwardTokens(c *gin.Context) {
	var req mutateTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	newBalance, err := h.ledgerService.AwardTokens(c, userID, req.Amount, req.Description, req.RelatedEntityID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to award tokens: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "newBalance": newBalance})
}

// SpendTokens handles POST /tokens/spend
func (h *LedgerHandler) SpendTokens(c *gin.Context) {
	var req mutateTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	newBalance, err := h.ledgerService.SpendTokens(c, userID, req.Amount, req.Description, req.RelatedEntityID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to spend tokens: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "newBalance": newBalance})
}

type purchaseRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Amount      int    `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
	ItemID      string `json:"itemId" binding:"required"`
}

// PurchaseWithTokens handles POST /tokens/purchase
func (h *LedgerHandler) PurchaseWithTokens(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	newBalance, err := h.ledgerService.PurchaseWithTokens(c, userID, req.Amount, req.Description, req.ItemID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to purchase: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "newBalance": newBalance})
}

type giftRequest struct {
	FromUserID  string `json:"fromUserId" binding:"required"`
	ToUserID    string `json:"toUserId" binding:"required"`
	Amount      int    `json:"amount" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// GiftTokens handles POST /tokens/gift
func (h *LedgerHandler) GiftTokens(c *gin.Context) {
	var req giftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fromUserID, err := primitive.ObjectIDFromHex(req.FromUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sender ID format"})
		return
	}
	toUserID, err := primitive.ObjectIDFromHex(req.ToUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient ID format"})
		return
	}

	newBalance, err := h.ledgerService.GiftTokens(c, fromUserID, toUserID, req.Amount, req.Description)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to gift tokens: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fromUserId": req.FromUserID, "newBalance": newBalance})
}

type actionRequest struct {
	UserID string `json:"userId" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// AwardTokensForAction handles POST /tokens/actions
func (h *LedgerHandler) AwardTokensForAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	newBalance, err := h.ledgerService.AwardTokensForAction(c, userID, req.Action)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to award action reward: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "action": req.Action, "newBalance": newBalance})
}
