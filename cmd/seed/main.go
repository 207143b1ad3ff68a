// Seed carga catálogos (preguntas, mentores, empleos) desde archivos JSON.
// Es el stand-in local del job de ingesta externo: inserta ítem por ítem y
// reporta conteos de éxito/falla en lugar de abortar el lote completo.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"asha-platform/internal/config"
	"asha-platform/internal/db"
	"asha-platform/internal/domain"
	"asha-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	questionsPath := flag.String("questions", "", "ruta a un JSON con preguntas")
	mentorsPath := flag.String("mentors", "", "ruta a un JSON con mentores")
	jobsPath := flag.String("jobs", "", "ruta a un JSON con empleos")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if *questionsPath != "" {
		seedQuestions(ctx, logger, repository.NewPgQuestionRepository(pool), *questionsPath)
	}
	if *mentorsPath != "" {
		seedMentors(ctx, logger, repository.NewPgMentorRepository(pool), *mentorsPath)
	}
	if *jobsPath != "" {
		seedJobs(ctx, logger, repository.NewPgJobRepository(pool), *jobsPath)
	}
}

func seedQuestions(ctx context.Context, logger *zap.Logger, repo repository.QuestionRepository, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read questions file", zap.Error(err))
	}

	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		logger.Fatal("parse questions file", zap.Error(err))
	}

	inserted, failed := 0, 0
	for _, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if q.Company == "" {
			q.Company = "Other"
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = time.Now().UTC()
		}
		if err := repo.Create(ctx, q); err != nil {
			failed++
			logger.Warn("insert question failed", zap.Error(err), zap.String("id", q.ID))
			continue
		}
		inserted++
	}

	logger.Info("questions seeded", zap.Int("inserted", inserted), zap.Int("failed", failed))
}

func seedMentors(ctx context.Context, logger *zap.Logger, repo repository.MentorRepository, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read mentors file", zap.Error(err))
	}

	var mentors []domain.Mentor
	if err := json.Unmarshal(raw, &mentors); err != nil {
		logger.Fatal("parse mentors file", zap.Error(err))
	}

	inserted, failed := 0, 0
	for _, m := range mentors {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now().UTC()
		}
		if err := repo.Create(ctx, m); err != nil {
			failed++
			logger.Warn("insert mentor failed", zap.Error(err), zap.String("id", m.ID))
			continue
		}
		inserted++
	}

	logger.Info("mentors seeded", zap.Int("inserted", inserted), zap.Int("failed", failed))
}

func seedJobs(ctx context.Context, logger *zap.Logger, repo repository.JobRepository, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("read jobs file", zap.Error(err))
	}

	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		logger.Fatal("parse jobs file", zap.Error(err))
	}

	inserted, failed := 0, 0
	for _, j := range jobs {
		if j.ID == "" {
			j.ID = uuid.NewString()
		}
		if j.PostedAt.IsZero() {
			j.PostedAt = time.Now().UTC()
		}
		if err := repo.Create(ctx, j); err != nil {
			failed++
			logger.Warn("insert job failed", zap.Error(err), zap.String("id", j.ID))
			continue
		}
		inserted++
	}

	logger.Info("jobs seeded", zap.Int("inserted", inserted), zap.Int("failed", failed))
}
