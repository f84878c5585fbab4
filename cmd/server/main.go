package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmatch/internal/api"
	"mockmatch/internal/app/service"
	"mockmatch/internal/app/worker"
	"mockmatch/internal/common/security"
	"mockmatch/internal/domain/repository"
	"mockmatch/internal/platform/config"
	"mockmatch/internal/platform/database"
	"mockmatch/internal/platform/queue"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	fmt.Println("Configuration loaded.")

	// 2. Token Service
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	fmt.Println("Token service initialized.")

	// 3. Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	defer db.Close()
	fmt.Println("Database connected.")

	// 4. Redis
	rdb, err := queue.Connect(cfg)
	if err != nil {
		log.Fatalf("Redis error: %v", err)
	}
	defer rdb.Close()
	fmt.Println("Redis connected.")

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	matchRepo := repository.NewPgMatchRepository(db)
	interviewRepo := repository.NewPgInterviewRepository(db)
	notificationRepo := repository.NewPgNotificationRepository(db)

	// 6. Services
	authService := service.NewAuthService(userRepo, tokens)
	profileService := service.NewProfileService(userRepo)
	notificationService := service.NewNotificationService(notificationRepo, rdb, cfg.NotificationQueueName)
	matchService := service.NewMatchService(userRepo, matchRepo, notificationService)
	interviewService := service.NewInterviewService(userRepo, interviewRepo, notificationService)

	// 7. Notification Worker (as a goroutine)
	notificationWorker := worker.NewNotificationWorker(rdb, notificationRepo, cfg.NotificationQueueName)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go notificationWorker.Start(workerCtx)
	fmt.Println("Notification worker started.")

	// 8. Router & HTTP Server
	router := api.NewRouter(cfg, tokens, authService, profileService, matchService, interviewService, notificationService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
