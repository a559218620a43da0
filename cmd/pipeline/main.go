package main

import (
	"context"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	benefitsusecase "portfolio_backend/internal/feature/benefits/usecase"
	"portfolio_backend/internal/feature/enrichment/adapters/curated"
	"portfolio_backend/internal/feature/enrichment/adapters/gemini"
	"portfolio_backend/internal/feature/enrichment/adapters/namerules"
	enrichusecase "portfolio_backend/internal/feature/enrichment/usecase"
	holdingadapters "portfolio_backend/internal/feature/holdings/adapters"
	pipelineusecase "portfolio_backend/internal/feature/pipeline/usecase"
	statementsusecase "portfolio_backend/internal/feature/statements/usecase"
	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/config"
	platformdb "portfolio_backend/internal/platform/db"
	"portfolio_backend/internal/platform/externalapi/profileapi"
	platformhttp "portfolio_backend/internal/platform/http"
	platformredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

// External lookups are throttled to stay inside free-tier API quotas.
const apiCallsPerMinute = 8

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// db
	db, err := platformdb.Open(platformdb.Config{
		Host:       cfg.Database.Host,
		Port:       cfg.Database.Port,
		User:       cfg.Database.User,
		Password:   cfg.Database.Password,
		Name:       cfg.Database.Name,
		SSLMode:    cfg.Database.SSLMode,
		SQLitePath: cfg.Database.SQLitePath,
	})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if cfg.Database.RunMigrations {
		if err := platformdb.Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	// Redis (optional: the classification cache degrades to pass-through)
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without classification cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Enrichment tiers. External tiers are optional and skipped when their
	// credentials are missing.
	var profiles enrichusecase.ProfileRepository
	apiCfg := profileapi.LoadConfig()
	if apiCfg.APIKey != "" {
		profiles = profileapi.NewProfileAPI(apiCfg, platformhttp.NewHTTPClient(apiCfg.Timeout))
	} else {
		log.Println("[WARN] PROFILE_API_KEY not set. Skipping the profile API tier.")
	}

	var llm enrichusecase.LLMClassifier
	if classifier, err := gemini.NewGeminiClassifier(ctx); err != nil {
		log.Println("[WARN] Gemini unavailable. Skipping the LLM tier:", err)
	} else {
		llm = classifier
	}

	limiter := ratelimiter.NewRateLimiter(apiCallsPerMinute, time.Minute)
	resolver := enrichusecase.NewChainResolver(curated.NewTable(), profiles, namerules.NewClassifier(), llm, limiter)
	cachedResolver := cache.NewCachingResolver(rdb, 0, resolver, "classifications")

	// Pipeline wiring
	store := holdingadapters.NewHoldingRepository(db)
	importer := statementsusecase.NewImportUsecase(cfg.Pipeline.StatementsDir)
	enricher := enrichusecase.NewEnrichUsecase(cachedResolver)
	benefits := benefitsusecase.NewIntegrateUsecase(store, cfg.Pipeline.StageDir)

	pipeline := pipelineusecase.NewPipelineUsecase(importer, enricher, benefits, store, cfg.Pipeline.StageDir)

	if err := pipeline.Run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("pipeline ok")
}
