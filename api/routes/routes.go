package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kiweel/kiweel-backend/internal/config"
	"github.com/kiweel/kiweel-backend/internal/handlers"
	"github.com/kiweel/kiweel-backend/internal/middleware"
)

// HandlerDependencies groups the handlers wired in main
type HandlerDependencies struct {
	LedgerHandler  *handlers.LedgerHandler
	MissionHandler *handlers.MissionHandler
	CheckinHandler *handlers.CheckinHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		public.GET("/tokens/catalog", deps.LedgerHandler.GetCatalog)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Token ledger routes
		tokens := protected.Group("/tokens")
		{
			tokens.GET("/balance/:userId", deps.LedgerHandler.GetBalance)
			tokens.GET("/transactions/:userId", deps.LedgerHandler.GetTransactions)
			tokens.POST("/award", deps.LedgerHandler.AwardTokens)
			tokens.POST("/spend", deps.LedgerHandler.SpendTokens)
			tokens.POST("/purchase", deps.LedgerHandler.PurchaseWithTokens)
			tokens.POST("/gift", deps.LedgerHandler.GiftTokens)
			tokens.POST("/actions", deps.LedgerHandler.AwardTokensForAction)
		}

		// Daily check-in routes
		checkins := protected.Group("/checkins")
		{
			checkins.POST("", deps.CheckinHandler.CheckIn)
			checkins.GET("/:userId/today", deps.CheckinHandler.HasCheckedInToday)
		}

		// Mission routes
		missions := protected.Group("/missions")
		{
			missions.POST("", deps.MissionHandler.CreateMission)
			missions.GET("/:id", deps.MissionHandler.GetMissionByID)
			missions.GET("/user/:userId", deps.MissionHandler.GetMissionsByUserID)
			missions.POST("/:id/progress", deps.MissionHandler.AddProgress)
			missions.POST("/:id/complete", deps.MissionHandler.CompleteMission)
		}
	}

	return router
}
