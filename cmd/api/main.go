package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiweel/kiweel-backend/api/routes"
	"github.com/kiweel/kiweel-backend/internal/config"
	"github.com/kiweel/kiweel-backend/internal/handlers"
	"github.com/kiweel/kiweel-backend/internal/repositories"
	mongorepo "github.com/kiweel/kiweel-backend/internal/repositories/mongodb"
	"github.com/kiweel/kiweel-backend/internal/rewards"
	"github.com/kiweel/kiweel-backend/internal/services"
	"github.com/kiweel/kiweel-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var missionRepo repositories.MissionRepository = mongorepo.NewMissionRepository(db)
	var checkinRepo repositories.CheckinRepository = mongorepo.NewCheckinRepository(db)

	// The reward catalog is fixed for the process lifetime
	catalog := rewards.NewCatalog(cfg.Rewards.Catalog)

	// Services
	ledgerService := services.NewLedgerService(userRepo, transactionRepo, missionRepo, catalog)
	checkinService := services.NewCheckinService(checkinRepo, ledgerService)
	missionService := services.NewMissionService(missionRepo, ledgerService, catalog)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		LedgerHandler:  handlers.NewLedgerHandler(ledgerService),
		MissionHandler: handlers.NewMissionHandler(missionService),
		CheckinHandler: handlers.NewCheckinHandler(checkinService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
