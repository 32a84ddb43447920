package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/MateoL17/LinKage/internal/config"
	"github.com/MateoL17/LinKage/internal/database"
	postgresrepo "github.com/MateoL17/LinKage/internal/repository/postgres"
	"github.com/MateoL17/LinKage/internal/service"
	"github.com/MateoL17/LinKage/internal/transport/http/handlers"
	"github.com/MateoL17/LinKage/internal/transport/http/middleware"
	"github.com/MateoL17/LinKage/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	likeRepo := postgresrepo.NewLikeRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo)
	matchService := service.NewMatchService(likeRepo, userRepo)
	chatService := service.NewChatService(messageRepo, userRepo)

	// WebSocket hub + live-delivery notifier
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)
	matchService.SetNotifier(notifier)
	chatService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	matchHandler := handlers.NewMatchHandler(matchService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Discover & likes
	mux.Handle("GET /api/v1/discover", auth(http.HandlerFunc(userHandler.Discover)))
	mux.Handle("POST /api/v1/likes", auth(http.HandlerFunc(matchHandler.Like)))
	mux.Handle("GET /api/v1/likes/received", auth(http.HandlerFunc(matchHandler.LikesReceived)))
	mux.Handle("GET /api/v1/matches", auth(http.HandlerFunc(matchHandler.Matches)))

	// Protected - Messaging
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(chatHandler.SendMessage)))
	mux.Handle("GET /api/v1/conversations", auth(http.HandlerFunc(chatHandler.ListConversations)))
	mux.Handle("GET /api/v1/conversations/{username}", auth(http.HandlerFunc(chatHandler.History)))
	mux.Handle("POST /api/v1/conversations/{username}/read", auth(http.HandlerFunc(chatHandler.MarkRead)))

	// WebSocket (token auth via query param)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, chatService, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
