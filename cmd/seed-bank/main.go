package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/database"
	"github.com/placeprep/placeprep-backend/internal/logger"
	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
	"github.com/placeprep/placeprep-backend/internal/service"
)

// seedFile is the on-disk format: a flat list of questions.
type seedFile struct {
	Questions []model.AddQuestionRequest `json:"questions"`
}

// Loads a JSON question file into the global bank, replacing whatever is
// there. Intended for initial provisioning, not live maintenance.
func main() {
	var path string
	flag.StringVar(&path, "file", "seed/questions.json", "Path to the question seed file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read seed file")
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse seed file")
	}
	if len(seed.Questions) == 0 {
		log.Fatal().Msg("Seed file contains no questions")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	questionService := service.NewQuestionService(questionRepo, log)

	fmt.Printf("=== Seeding Global Question Bank (%d questions) ===\n", len(seed.Questions))

	n, err := questionService.Replace(ctx, model.GlobalScope, &model.ReplaceQuestionsRequest{
		Questions: seed.Questions,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	fmt.Printf("\nSeed completed! Loaded %d questions into the global bank.\n", n)
}
