// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"legalai_backend/internal/api"
	"legalai_backend/internal/feature/auth/domain/entity"
	"legalai_backend/internal/feature/auth/transport/http/dto"
	"legalai_backend/internal/feature/auth/usecase"
	jwtmw "legalai_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたメールアドレス・表示名・パスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, email, name, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にアクセストークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// GoogleLogin はGoogleのIDトークンを検証し、アクセストークンを返します。
	GoogleLogin(ctx context.Context, idToken string) (string, error)
	// CurrentUser はトークンのサブジェクトからユーザーを解決します。
	CurrentUser(ctx context.Context, email string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// userResponse はドメインエンティティを公開用レスポンスに変換します。
func userResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー・メール重複時は400を返却
// - ストレージ障害時は500を返却
// - 成功時は201と作成されたユーザーを返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("signup rejected: email already registered", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email already registered"})
			return
		}
		// 内部エラーの詳細はログにのみ残し、クライアントには返さない
		slog.Error("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, userResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストフォームをLoginReqにバインド（username=メールアドレス）
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー不在とパスワード不一致は区別しない）
// - 認証成功時はアクセストークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("user login successful", "email", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// GoogleLogin はGoogle IDトークンによるログイン/初回登録を処理します。
// - 検証失敗時は401を返却
// - ストレージ障害時は500を返却
// - 成功時はローカル発行のアクセストークン付きで200を返却
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("google login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.GoogleLogin(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidGoogleToken) {
			slog.Warn("google login rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid google token"})
			return
		}
		slog.Error("google login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "google login failed"})
		return
	}
	slog.Info("google login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me は認証済みユーザー自身の情報を返します。
// AuthRequiredミドルウェアがコンテキストに設定したサブジェクトを解決します。
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString(jwtmw.ContextSubject)
	if email == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid authentication credentials"})
		return
	}
	user, err := h.auth.CurrentUser(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			// トークンは有効だがユーザーが存在しない（発行後に消えた等）
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid authentication credentials"})
			return
		}
		slog.Error("failed to resolve current user", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}
