package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"thesisdesk/config"
	"thesisdesk/internal/cache"
	"thesisdesk/internal/formclient"
	"thesisdesk/internal/repository"
	"thesisdesk/internal/service"
	"thesisdesk/internal/transport/rest"
	"thesisdesk/internal/transport/ws"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	// Initialize caches
	schemaCache := cache.NewSchemaCache(rdb, cfg.SchemaCacheTTL)
	draftCache := cache.NewDraftCache(rdb)
	scoreboard := cache.NewScoreboardCache(rdb)

	// External feedback-form client
	formClient := formclient.NewClient(formclient.Config{
		BaseURL: cfg.FormServiceURL,
		Token:   cfg.FormServiceToken,
	})

	// Initialize services
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	userSvc := service.NewUserService(userRepo, groupRepo)
	scheduleSvc := service.NewScheduleService(scheduleRepo, feedbackRepo, scoreboard)
	feedbackSvc := service.NewFeedbackService(formClient, schemaCache, draftCache, scoreboard, feedbackRepo, cfg.AutosaveQuiet)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	feedbackSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		UserService:     userSvc,
		ScheduleService: scheduleSvc,
		FeedbackService: feedbackSvc,
		WSHub:           wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Staff auth: username=%s", cfg.AdminUsername)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/users, /v1/groups")
		log.Println("  POST/GET /v1/schedules")
		log.Println("  POST /v1/feedback/{itemId}/open")
		log.Println("  PUT  /v1/feedback/{itemId}/answers/{questionId}")
		log.Println("  POST /v1/feedback/{itemId}/save")
		log.Println("  POST /v1/feedback/{itemId}/submit")
		log.Println("  WS  /v1/ws/items/{itemId}/watch")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
