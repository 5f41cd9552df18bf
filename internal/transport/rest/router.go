package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"thesisdesk/internal/service"
	"thesisdesk/internal/transport/rest/handler"
	"thesisdesk/internal/transport/rest/middleware"
	"thesisdesk/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	UserService     *service.UserService
	ScheduleService *service.ScheduleService
	FeedbackService *service.FeedbackService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	userHandler := handler.NewUserHandler(c.UserService)
	scheduleHandler := handler.NewScheduleHandler(c.ScheduleService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/items/{itemId}/watch", wsHandler.WatchItem).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Staff routes (require auth)
	staffRoutes := v1.NewRoute().Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/users", userHandler.ListUsers).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/users/count", userHandler.CountUsers).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/users/{userId}", userHandler.GetUser).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/groups", userHandler.ListGroups).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/groups/{groupId}", userHandler.GetGroup).Methods("GET", "OPTIONS")

	staffRoutes.HandleFunc("/schedules", scheduleHandler.Create).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/schedules", scheduleHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/schedules/{scheduleId}", scheduleHandler.Get).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/schedules/{scheduleId}", scheduleHandler.Update).Methods("PUT", "OPTIONS")
	staffRoutes.HandleFunc("/schedules/{scheduleId}/scoreboard", scheduleHandler.Scoreboard).Methods("GET", "OPTIONS")

	staffRoutes.HandleFunc("/feedback/schema/refresh", feedbackHandler.RefreshSchema).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/open", feedbackHandler.Open).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/answers/{questionId}", feedbackHandler.SetAnswer).Methods("PUT", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/answers/{questionId}", feedbackHandler.ClearAnswer).Methods("DELETE", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/save", feedbackHandler.Save).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/submit", feedbackHandler.Submit).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/summary", feedbackHandler.Summary).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/draft", feedbackHandler.RecoverDraft).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/feedback/{itemId}/close", feedbackHandler.Close).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
