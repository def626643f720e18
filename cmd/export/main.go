// Command export writes the learner's progress (attempt history, headline
// statistics, and level unlock flags) to a JSON file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"clozedrill/internal/config"
	"clozedrill/internal/database"
	"clozedrill/internal/models"
	"clozedrill/internal/repository"
	"clozedrill/internal/service"
)

type exportDocument struct {
	ExportedAt time.Time              `json:"exportedAt"`
	Summary    models.ProgressSummary `json:"summary"`
	History    []models.AttemptRecord `json:"history"`
	Levels     models.LevelProgress   `json:"levels"`
}

func main() {
	output := flag.String("output", "", "Output file path (default: progress_YYYYMMDD_HHMMSS.json)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	documentRepo := repository.NewDocumentRepository(db)
	progressService := service.NewProgressService(documentRepo)
	levelService := service.NewLevelService(documentRepo, cfg.PassPercent)

	outputPath := *output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("progress_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	doc := exportDocument{
		ExportedAt: time.Now(),
		Summary:    progressService.Aggregate(),
		History:    progressService.History(),
		Levels:     levelService.Progress(),
	}
	if doc.History == nil {
		doc.History = []models.AttemptRecord{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode export: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write export file: %v", err)
	}

	log.Printf("Exported %d attempt records to %s", len(doc.History), outputPath)
}
