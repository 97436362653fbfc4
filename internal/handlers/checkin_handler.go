package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiweel/kiweel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckinHandler handles daily check-in HTTP requests
type CheckinHandler struct {
	checkinService services.CheckinService
}

// NewCheckinHandler creates a new CheckinHandler
func NewCheckinHandler(checkinService services.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

type checkinRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// CheckIn handles POST /checkins
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	newBalance, err := h.checkinService.CheckIn(c, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to check in: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": req.UserID, "newBalance": newBalance})
}

// HasCheckedInToday handles GET /checkins/:userId/today
func (h *CheckinHandler) HasCheckedInToday(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	checkedIn, err := h.checkinService.HasCheckedInToday(c, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to check status: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "checkedInToday": checkedIn})
}
