package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"asha-platform/internal/config"
	"asha-platform/internal/db"
	apihttp "asha-platform/internal/http"
	"asha-platform/internal/llm"
	"asha-platform/internal/repository"
	"asha-platform/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	questionRepo := repository.NewPgQuestionRepository(pool)
	savedRepo := repository.NewPgSavedQuestionRepository(pool)
	interviewRepo := repository.NewPgInterviewRepository(pool)
	mentorRepo := repository.NewPgMentorRepository(pool)
	jobRepo := repository.NewPgJobRepository(pool)
	threadRepo := repository.NewPgThreadRepository(pool)

	cacheTTL := time.Duration(cfg.QuestionCacheTTLSec) * time.Second
	var questionCache service.QuestionCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			questionCache = service.NewRedisQuestionCache(redisClient, cacheTTL)
		}
		cancel()
	}
	if questionCache == nil {
		questionCache = service.NewMemoryQuestionCache(cacheTTL)
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	questionSvc := service.NewQuestionService(logger, questionRepo, questionCache)
	ledgerSvc := service.NewLedgerService(savedRepo, questionRepo)
	interviewSvc := service.NewInterviewService(logger, interviewRepo)
	generationSvc := service.NewGenerationService(logger, llmClient)
	mentorSvc := service.NewMentorService(mentorRepo)
	jobSvc := service.NewJobService(jobRepo)
	threadSvc := service.NewThreadService(threadRepo)

	questionHandler := apihttp.NewQuestionHandler(logger, questionSvc)
	savedHandler := apihttp.NewSavedQuestionHandler(logger, ledgerSvc)
	interviewHandler := apihttp.NewInterviewHandler(logger, interviewSvc)
	generationHandler := apihttp.NewGenerationHandler(logger, generationSvc)
	mentorHandler := apihttp.NewMentorHandler(logger, mentorSvc)
	jobHandler := apihttp.NewJobHandler(logger, jobSvc)
	threadHandler := apihttp.NewThreadHandler(logger, threadSvc)

	router := apihttp.NewRouter(logger, jwtSvc,
		questionHandler, savedHandler, interviewHandler,
		generationHandler, mentorHandler, jobHandler, threadHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
