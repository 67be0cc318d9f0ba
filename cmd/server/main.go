// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/domain"
	"github.com/docuchat/docuchat/internal/handlers"
	"github.com/docuchat/docuchat/internal/middleware"
	"github.com/docuchat/docuchat/internal/ratelimit"
	chatrepo "github.com/docuchat/docuchat/internal/repository/chat"
	"github.com/docuchat/docuchat/internal/repository/message"
	"github.com/docuchat/docuchat/internal/repository/user"
	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/services/ai"
	"github.com/docuchat/docuchat/internal/services/pdf"
	"github.com/docuchat/docuchat/internal/services/user_services"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	chatRepo := chatrepo.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel
	provider := ai.NewOpenAIProvider(aiConfig)

	aiService, err := services.NewAIService(provider, aiConfig.Timeout, services.NewLogger("ai"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI Service: %v", err)
	}
	if status := aiService.GetProviderStatus(context.Background()); !status.Configured {
		log.Printf("[Startup] LLM provider not configured: %s", status.Message)
	}

	chatService, err := services.NewChatService(chatRepo, messageRepo, aiService, services.NewLogger("chat"))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, services.NewLogger("auth"))
	extractor := pdf.NewExtractor()

	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler, err := handlers.NewChatHandler(chatService, services.NewMarkdownRenderer())
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Handler: %v", err)
	}
	pdfHandler := handlers.NewPDFHandler(extractor, cfg.MaxUploadBytes, services.NewLogger("pdf"))
	pageHandler := handlers.NewPageHandler()

	// --- Router Setup ---
	r := mux.NewRouter()
	sessionMiddleware := middleware.NewSessionMiddleware(authService)
	apiSessionMiddleware := middleware.NewAPISessionMiddleware(authService)

	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.NewEdgeGate(authService))

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.HandleFunc("/", pageHandler.ShowIndexPage).Methods("GET")
	r.HandleFunc("/login", pageHandler.ShowLoginPage).Methods("GET")
	r.HandleFunc("/register", pageHandler.ShowRegisterPage).Methods("GET")
	loginChain := middleware.RateLimitMiddleware(authLimiter, "login")(
		middleware.AuthSuccessMiddleware(authLimiter, "login")(http.HandlerFunc(authHandler.Login)))
	registerChain := middleware.RateLimitMiddleware(authLimiter, "register")(
		middleware.AuthSuccessMiddleware(authLimiter, "register")(http.HandlerFunc(authHandler.Register)))
	r.Handle("/login", loginChain).Methods("POST")
	r.Handle("/register", registerChain).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// --- Protected Pages ---
	protected := r.PathPrefix("/").Subrouter()
	protected.Use(sessionMiddleware)
	protected.HandleFunc("/chat", pageHandler.ShowChatPage).Methods("GET")

	// --- API ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(apiSessionMiddleware)
	api.HandleFunc("/chat", chatHandler.HandleChatTurn).Methods("POST")
	api.HandleFunc("/extract-pdf", pdfHandler.HandleExtract).Methods("POST")
	api.HandleFunc("/chats", chatHandler.GetUserChats).Methods("GET")
	api.HandleFunc("/chats/{id:[0-9]+}/messages", chatHandler.GetChatMessages).Methods("GET")

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "404", "Page Not Found", "The page you are looking for does not exist.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHandler.ShowErrorPage(w, "405", "Method Not Allowed", "The method is not allowed for this resource.")
	})

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("[Startup] DocuChat server starting on port %s", port)
	log.Printf("[Startup] Chat interface: http://localhost%s/chat", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
