package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiweel/kiweel-backend/internal/models"
	"github.com/kiweel/kiweel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionHandler handles mission-related HTTP requests
type MissionHandler struct {
	missionService services.MissionService
}

// NewMissionHandler creates a new MissionHandler
func NewMissionHandler(missionService services.MissionService) *MissionHandler {
	return &MissionHandler{
		missionService: missionService,
	}
}

type createMissionRequest struct {
	UserID      string     `json:"userId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TargetValue int        `json:"targetValue" binding:"required"`
	TokenReward int        `json:"tokenReward"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// CreateMission handles POST /missions
func (h *MissionHandler) CreateMission(c *gin.Context) {
	var req createMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	mission := &models.Mission{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		TokenReward: req.TokenReward,
	}
	if req.ExpiresAt != nil {
		mission.ExpiresAt = *req.ExpiresAt
	}

	if err := h.missionService.CreateMission(c, mission); err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to create mission: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, mission)
}

// GetMissionByID handles GET /missions/:id
func (h *MissionHandler) GetMissionByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission ID format"})
		return
	}

	mission, err := h.missionService.GetMissionByID(c, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Mission not found: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, mission)
}

// GetMissionsByUserID handles GET /missions/user/:userId
func (h *MissionHandler) GetMissionsByUserID(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	missions, err := h.missionService.GetMissionsByUserID(c, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to get missions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, missions)
}

type addProgressRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// AddProgress handles POST /missions/:id/progress
func (h *MissionHandler) AddProgress(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission ID format"})
		return
	}

	var req addProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mission, err := h.missionService.AddProgress(c, id, req.Amount)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to add progress: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, mission)
}

// CompleteMission handles POST /missions/:id/complete
func (h *MissionHandler) CompleteMission(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission ID format"})
		return
	}

	newBalance, err := h.missionService.CompleteMission(c, id)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to complete mission: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"missionId": id.Hex(), "newBalance": newBalance})
}
