// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"legalai_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// dummyPasswordHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証します。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	// 一意性はストレージ層のユニーク制約で保証されます（事前チェックのみでは競合時にレースが発生するため）。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindOrCreateByGoogle はメールアドレスでユーザーを検索し、存在すればそのまま返します
	// （既存のパスワードハッシュを上書きしません）。存在しなければGoogleIDのみを持つ
	// 新規ユーザーを作成します。
	FindOrCreateByGoogle(ctx context.Context, user *entity.User) (*entity.User, error)
}

// TokenGenerator は署名付きアクセストークンの発行を抽象化します。
type TokenGenerator interface {
	// GenerateToken は指定されたサブジェクト（メールアドレス）の署名済みトークンを生成します。
	GenerateToken(subject string) (string, error)
}

// GoogleVerifier はGoogle発行のIDトークンの検証を抽象化します。
// クライアントが申告するクレームを信用せず、必ずプロバイダー検証を通します。
type GoogleVerifier interface {
	// Verify はIDトークンを検証し、検証済みクレームを返します。
	// 署名不正・期限切れ・ネットワークエラーの場合はエラーを返します。
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// GoogleClaims はプロバイダー検証後にのみ生成される検証済みIDクレームです。
type GoogleClaims struct {
	Email    string // 検証済みメールアドレス
	Name     string // 表示名
	GoogleID string // Googleのsubjectクレーム
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	tokens   TokenGenerator
	verifier GoogleVerifier
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator, verifier GoogleVerifier) *authUsecase {
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
	}
}

// normalizeEmail はメールアドレスを小文字・前後空白なしに正規化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、作成されたユーザーを返します。
// メールアドレスが既に登録されている場合はErrEmailAlreadyExistsを返します。
func (u *authUsecase) Signup(ctx context.Context, email, name, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時に署名済みアクセストークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// 認証失敗の理由（ユーザー不在・パスワード不一致）は区別せずErrInvalidCredentialsを返します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyPasswordHash
	if err == nil && user.HasPassword() {
		passwordHash = user.PasswordHash
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// bcryptはハッシュに埋め込まれたソルトで再計算し、定数時間で比較する
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil || !user.HasPassword() {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.Email)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, nil
}

// GoogleLogin はGoogleのIDトークンを検証し、初回の場合はユーザーを作成した上で
// アクセストークンを返します。同じメールアドレスの既存アカウントがある場合は
// そのアカウントに相乗りします（メールアドレス一致による暗黙のリンク）。
func (u *authUsecase) GoogleLogin(ctx context.Context, idToken string) (string, error) {
	claims, err := u.verifier.Verify(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidGoogleToken, err)
	}

	user, err := u.users.FindOrCreateByGoogle(ctx, &entity.User{
		ID:       uuid.NewString(),
		Email:    normalizeEmail(claims.Email),
		Name:     claims.Name,
		GoogleID: claims.GoogleID,
	})
	if err != nil {
		return "", err
	}

	token, err := u.tokens.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// CurrentUser はトークンのサブジェクト（メールアドレス）からユーザーを解決します。
func (u *authUsecase) CurrentUser(ctx context.Context, email string) (*entity.User, error) {
	return u.users.FindByEmail(ctx, normalizeEmail(email))
}
