package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"legalai_backend/internal/app/di"
	"legalai_backend/internal/app/router"
	authadapters "legalai_backend/internal/feature/auth/adapters"
	authhandler "legalai_backend/internal/feature/auth/transport/handler"
	authusecase "legalai_backend/internal/feature/auth/usecase"
	docadapters "legalai_backend/internal/feature/documents/adapters"
	"legalai_backend/internal/feature/documents/adapters/report"
	dochandler "legalai_backend/internal/feature/documents/transport/handler"
	docusecase "legalai_backend/internal/feature/documents/usecase"
	"legalai_backend/internal/platform/config"
	infradb "legalai_backend/internal/platform/db"
	jwtmw "legalai_backend/internal/platform/jwt"
	infraredis "legalai_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	ctx := context.Background()

	authCfg := config.LoadAuthConfig()
	serverCfg := config.LoadServerConfig()

	// JWT_SECRETチェック（開発中の注意喚起）
	if authCfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(config.LoadRedisConfig()); err != nil {
		log.Println("[WARN] Redis unavailable. Running without summary cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// トークンサービス（署名鍵は起動時に一度だけロード）
	tokens := jwtmw.NewTokenService(authCfg.JWTSecret, authCfg.TokenTTL)

	// 外部クライアント
	googleVerifier, err := di.NewGoogleVerifier(ctx, authCfg.GoogleClientID)
	if err != nil {
		log.Fatalf("failed to create google verifier: %v", err)
	}
	extractor, err := di.NewTextExtractor(ctx)
	if err != nil {
		log.Fatalf("failed to create text extractor: %v", err)
	}
	defer func() {
		if err := extractor.Close(); err != nil {
			log.Println("[ERROR] Failed to close vision client:", err)
		}
	}()
	summarizer, err := di.NewSummarizer(ctx, rdb)
	if err != nil {
		log.Fatalf("failed to create summarizer: %v", err)
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	docRepo := docadapters.NewDocumentPostgres(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, googleVerifier)
	docsUC := docusecase.NewDocumentsUsecase(extractor, summarizer, report.NewPDFRenderer(), docRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	docsH := dochandler.NewDocumentHandler(docsUC)

	// ルータ生成
	r := router.NewRouter(serverCfg, tokens, authH, docsH)

	if err := r.Run(":" + serverCfg.Port); err != nil {
		log.Fatal(err)
	}
}
