// Package google はGoogle IDトークンの検証アダプターを提供します。
package google

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"legalai_backend/internal/feature/auth/usecase"
)

// Verifier はGoogleのトークン検証エンドポイントを使用してIDトークンを検証します。
// クライアントが送信したトークンはここでの検証を通るまで一切信用しません。
type Verifier struct {
	validator *idtoken.Validator
	clientID  string
}

// VerifierがGoogleVerifierを実装していることをコンパイル時に検証します。
var _ usecase.GoogleVerifier = (*Verifier)(nil)

// NewVerifier は指定されたOAuthクライアントIDでVerifierの新しいインスタンスを生成します。
// 外部プロバイダーへの呼び出しが無制限にブロックしないよう、タイムアウト付きの
// HTTPクライアントを注入します。
func NewVerifier(ctx context.Context, clientID string, client *http.Client) (*Verifier, error) {
	validator, err := idtoken.NewValidator(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create idtoken validator: %w", err)
	}
	return &Verifier{validator: validator, clientID: clientID}, nil
}

// Verify はIDトークンの署名・有効期限・audience（クライアントID）を検証し、
// 検証済みクレームを返します。
func (v *Verifier) Verify(ctx context.Context, token string) (*usecase.GoogleClaims, error) {
	payload, err := v.validator.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("google token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &usecase.GoogleClaims{
		Email:    email,
		Name:     name,
		GoogleID: payload.Subject,
	}, nil
}
