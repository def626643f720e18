package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clozedrill/internal/config"
	"clozedrill/internal/content"
	"clozedrill/internal/database"
	"clozedrill/internal/exercise"
	"clozedrill/internal/handlers"
	"clozedrill/internal/repository"
	"clozedrill/internal/security"
	"clozedrill/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Content documents
	loader := content.NewLoader(cfg.ContentPath)

	// Initialize repositories
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize services
	progressService := service.NewProgressService(documentRepo)
	levelService := service.NewLevelService(documentRepo, cfg.PassPercent)
	sessions := exercise.NewManager()

	// Initialize handlers
	issuer := security.NewTokenIssuer(cfg.SessionSecret, cfg.SessionDuration)
	middleware := handlers.NewMiddleware(issuer, cfg.SessionDuration)
	practiceHandler := handlers.NewPracticeHandler(loader, sessions, progressService)
	wordFormationHandler := handlers.NewWordFormationHandler(loader, progressService)
	categoryHandler := handlers.NewCategoryHandler(loader, progressService, nil)
	levelsHandler := handlers.NewLevelsHandler(loader, levelService, progressService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Setup routes
	mux := http.NewServeMux()

	// Open-cloze practice
	mux.HandleFunc("GET /api/tests", middleware.WithLearner(practiceHandler.ListTests))
	mux.HandleFunc("POST /api/practice/start/{testId}", middleware.WithLearner(practiceHandler.Start))
	mux.HandleFunc("POST /api/practice/submit", middleware.WithLearner(practiceHandler.Submit))
	mux.HandleFunc("POST /api/practice/retry", middleware.WithLearner(practiceHandler.Retry))

	// Word formation
	mux.HandleFunc("GET /api/wordformation", middleware.WithLearner(wordFormationHandler.Summary))
	mux.HandleFunc("POST /api/wordformation/{kind}/submit", middleware.WithLearner(wordFormationHandler.Submit))

	// Category drills
	mux.HandleFunc("GET /api/categories/{name}", middleware.WithLearner(categoryHandler.State))
	mux.HandleFunc("POST /api/categories/{name}/advance", middleware.WithLearner(categoryHandler.Advance))
	mux.HandleFunc("POST /api/categories/{name}/submit", middleware.WithLearner(categoryHandler.Submit))
	mux.HandleFunc("POST /api/categories/{name}/more", middleware.WithLearner(categoryHandler.More))
	mux.HandleFunc("POST /api/categories/{name}/reset", middleware.WithLearner(categoryHandler.Reset))

	// Progress and levels
	mux.HandleFunc("GET /api/progress", middleware.WithLearner(progressHandler.Summary))
	mux.HandleFunc("GET /api/levels", middleware.WithLearner(levelsHandler.List))
	mux.HandleFunc("POST /api/levels/intro-quiz/submit", middleware.WithLearner(levelsHandler.SubmitIntroQuiz))
	mux.HandleFunc("POST /api/levels/{level}/test/submit", middleware.WithLearner(levelsHandler.SubmitTest))
	mux.HandleFunc("POST /api/levels/{level}/cloze/submit", middleware.WithLearner(levelsHandler.SubmitCloze))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
