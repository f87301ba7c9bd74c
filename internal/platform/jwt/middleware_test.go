package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testVerifier はテスト用のトークンサービスを生成します。
func testVerifier(t *testing.T) *tokenService {
	t.Helper()
	return NewTokenService("test-secret", time.Hour)
}

// TestAuthRequired_MissingBearerToken はBearerトークンがない場合やプレフィックスが不正な場合に401が返されることを検証します。
func TestAuthRequired_MissingBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				c.Request.Header.Set("Authorization", tt.authHeader)
			}

			handler := AuthRequired(testVerifier(t))
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
			if !c.IsAborted() {
				t.Error("expected request to be aborted")
			}
		})
	}
}

// TestAuthRequired_InvalidToken は不正なトークン（改ざん・期限切れ等）で401が返されることを検証します。
func TestAuthRequired_InvalidToken(t *testing.T) {
	svc := testVerifier(t)

	wrongSecret := NewTokenService("wrong-secret", time.Hour)
	wrongSecretToken, _ := wrongSecret.GenerateToken("user@example.com")

	expiredSvc := NewTokenService("test-secret", -time.Hour)
	expiredToken, _ := expiredSvc.GenerateToken("user@example.com")

	validToken, _ := svc.GenerateToken("user@example.com")

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", wrongSecretToken},
		{"expired token", expiredToken},
		{"truncated token", validToken[:len(validToken)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+tt.token)

			handler := AuthRequired(svc)
			handler(c)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
			}
		})
	}
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、コンテキストにサブジェクトが設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	svc := testVerifier(t)

	tests := []struct {
		name    string
		subject string
	}{
		{"basic email", "user@example.com"},
		{"email with tag", "user+tag@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.GenerateToken(tt.subject)
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("Authorization", "Bearer "+token)

			handler := AuthRequired(svc)
			handler(c)

			if c.IsAborted() {
				t.Errorf("expected request not to be aborted, response: %s", w.Body.String())
				return
			}

			subject, exists := c.Get(ContextSubject)
			if !exists {
				t.Error("expected subject to be set in context")
				return
			}
			if subject.(string) != tt.subject {
				t.Errorf("expected subject %q, got %q", tt.subject, subject)
			}
		})
	}
}

// TestAuthRequired_PreflightBypass はCORSプリフライト（OPTIONS）が認証なしで通過することを検証します。
func TestAuthRequired_PreflightBypass(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodOptions, "/documents", nil)
	// Authorizationヘッダーなし

	handler := AuthRequired(testVerifier(t))
	handler(c)

	if c.IsAborted() {
		t.Errorf("expected preflight request not to be aborted, response: %s", w.Body.String())
	}
}
