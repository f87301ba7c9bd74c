package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "legalai_backend/internal/feature/auth/transport/handler"
	dochandler "legalai_backend/internal/feature/documents/transport/handler"
	"legalai_backend/internal/platform/config"
	"legalai_backend/internal/platform/http/handler"
	jwtmw "legalai_backend/internal/platform/jwt"
)

func NewRouter(cfg config.ServerConfig, verifier jwtmw.Verifier,
	auth *authhandler.AuthHandler, docs *dochandler.DocumentHandler) *gin.Engine {
	r := gin.Default()

	// CORS: プリフライト（OPTIONS）はここで処理され、認証ゲートを通らない
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/auth/signup", auth.Signup)
	// ログイン（アクセストークン発行）
	r.POST("/auth/login", auth.Login)
	// Googleログイン（初回は自動登録）
	r.POST("/auth/google", auth.GoogleLogin)

	// 認証必須のルート
	protected := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーにBearerトークンが必要になる
	protected.Use(jwtmw.AuthRequired(verifier))
	{
		protected.GET("/auth/me", auth.Me)
		protected.POST("/documents", docs.Upload)
		protected.GET("/documents", docs.List)
		protected.GET("/documents/:id/report", docs.Download)
	}

	return r
}
