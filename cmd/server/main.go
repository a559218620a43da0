package main

import (
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/router"
	authadapters "portfolio_backend/internal/feature/auth/adapters"
	"portfolio_backend/internal/feature/auth/domain/entity"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	holdingadapters "portfolio_backend/internal/feature/holdings/adapters"
	holdingshandler "portfolio_backend/internal/feature/holdings/transport/handler"
	holdingsusecase "portfolio_backend/internal/feature/holdings/usecase"
	"portfolio_backend/internal/platform/config"
	platformdb "portfolio_backend/internal/platform/db"
	jwtmw "portfolio_backend/internal/platform/jwt"
	platformredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/platform/session"
)

const accessTokenTTL = 15 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
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

	// Redis (required: refresh sessions live here)
	var rdb *redisv9.Client
	if rdb, err = platformredis.NewRedisClient(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Println("[ERROR] Failed to close Redis client:", err)
		}
	}()

	// Auth wiring: fixed env-provisioned accounts, Redis-backed sessions
	users, err := authadapters.NewUserEnv(
		authadapters.Credential{
			Username:     cfg.Auth.AdminUsername,
			PasswordHash: cfg.Auth.AdminPasswordHash,
			Role:         entity.RoleAdmin,
		},
		authadapters.Credential{
			Username:     cfg.Auth.ViewerUsername,
			PasswordHash: cfg.Auth.ViewerPasswordHash,
			Role:         entity.RoleViewer,
		},
	)
	if err != nil {
		log.Fatalf("failed to load dashboard users: %v", err)
	}
	sessions := session.NewSessionRedis(rdb, "sessions")
	jwtGen := jwtmw.NewGenerator(cfg.Auth.JWTSecret, accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(users, sessions, jwtGen)

	// Holdings wiring
	holdingRepo := holdingadapters.NewHoldingRepository(db)
	holdingsUC := holdingsusecase.NewHoldingsUsecase(holdingRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	holdingsH := holdingshandler.NewHoldingsHandler(holdingsUC)

	r := router.NewRouter(authH, holdingsH, cfg.Server.AllowedOrigins)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
