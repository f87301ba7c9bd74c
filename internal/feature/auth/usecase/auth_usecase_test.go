package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"legalai_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindOrCreateByGoogleFunc is called when the FindOrCreateByGoogle method is invoked.
	FindOrCreateByGoogleFunc func(ctx context.Context, user *entity.User) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound // Default: not found
}

// FindOrCreateByGoogle is the mock implementation of the FindOrCreateByGoogle method.
func (m *mockUserRepository) FindOrCreateByGoogle(ctx context.Context, user *entity.User) (*entity.User, error) {
	if m.FindOrCreateByGoogleFunc != nil {
		return m.FindOrCreateByGoogleFunc(ctx, user)
	}
	return user, nil // Default: created as-is
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(subject string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockTokenGenerator) GenerateToken(subject string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(subject)
	}
	return "mock-access-token", nil // Default: dummy token
}

// mockGoogleVerifier is a mock implementation of the GoogleVerifier interface.
type mockGoogleVerifier struct {
	// VerifyFunc is called when the Verify method is invoked.
	VerifyFunc func(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// Verify is the mock implementation of the Verify method.
func (m *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, idToken)
	}
	return nil, errors.New("verification failed") // Default: failure
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if user.PasswordHash == "" || user.PasswordHash == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if user.ID == "" {
					t.Error("expected generated ID")
				}
				if user.GoogleID != "" {
					t.Errorf("expected empty GoogleID for local signup, got %q", user.GoogleID)
				}
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, &mockGoogleVerifier{})
		user, err := uc.Signup(ctx, "Test@Example.com", "Test User", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// メールアドレスは小文字に正規化される
		if user.Email != "test@example.com" {
			t.Errorf("expected normalized email, got %q", user.Email)
		}
		if user.Name != "Test User" {
			t.Errorf("expected name 'Test User', got %q", user.Name)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{}, &mockGoogleVerifier{})
		_, err := uc.Signup(ctx, "test@example.com", "Test User", "short")

		if err == nil {
			t.Error("expected error for short password")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, &mockGoogleVerifier{})
		_, err := uc.Signup(ctx, "existing@example.com", "Test User", "password123")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:           "11111111-1111-1111-1111-111111111111",
		Email:        "test@example.com",
		Name:         "Test User",
		PasswordHash: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		mockTokens := &mockTokenGenerator{
			GenerateTokenFunc: func(subject string) (string, error) {
				if subject != testUser.Email {
					t.Errorf("unexpected subject: got %q, want %q", subject, testUser.Email)
				}
				return "mock-access-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens, &mockGoogleVerifier{})
		token, err := uc.Login(ctx, "test@example.com", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-access-token" {
			t.Errorf("expected token 'mock-access-token', got %q", token)
		}
	})

	t.Run("unknown email and wrong password return the same error", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, &mockGoogleVerifier{})

		_, unknownErr := uc.Login(ctx, "nobody@example.com", "password123")
		_, wrongPassErr := uc.Login(ctx, "test@example.com", "wrong-password")

		if !errors.Is(unknownErr, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
		}
		if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassErr)
		}
		// アカウント列挙を防ぐため、両者のエラーは同一でなければならない
		if unknownErr.Error() != wrongPassErr.Error() {
			t.Errorf("errors must be indistinguishable: %q vs %q", unknownErr, wrongPassErr)
		}
	})

	t.Run("federated-only account cannot login with password", func(t *testing.T) {
		googleOnly := &entity.User{
			ID:       "22222222-2222-2222-2222-222222222222",
			Email:    "google@example.com",
			Name:     "Google User",
			GoogleID: "sub-123",
		}
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return googleOnly, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, &mockGoogleVerifier{})
		_, err := uc.Login(ctx, "google@example.com", "any-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("token generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		mockTokens := &mockTokenGenerator{
			GenerateTokenFunc: func(subject string) (string, error) {
				return "", errors.New("signing failed")
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens, &mockGoogleVerifier{})
		_, err := uc.Login(ctx, "test@example.com", "password123")

		if err == nil {
			t.Error("expected error")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("token failure must not be reported as invalid credentials")
		}
	})
}

func TestAuthUsecase_GoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("first login creates a federated user", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			FindOrCreateByGoogleFunc: func(ctx context.Context, user *entity.User) (*entity.User, error) {
				created = user
				return user, nil
			},
		}
		verifier := &mockGoogleVerifier{
			VerifyFunc: func(ctx context.Context, idToken string) (*GoogleClaims, error) {
				if idToken != "google-id-token" {
					t.Errorf("unexpected id token: %q", idToken)
				}
				return &GoogleClaims{Email: "New@Example.com", Name: "New User", GoogleID: "sub-999"}, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, verifier)
		token, err := uc.GoogleLogin(ctx, "google-id-token")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-access-token" {
			t.Errorf("expected token 'mock-access-token', got %q", token)
		}
		if created == nil {
			t.Fatal("expected FindOrCreateByGoogle to be called")
		}
		if created.Email != "new@example.com" {
			t.Errorf("expected normalized email, got %q", created.Email)
		}
		if created.GoogleID != "sub-999" {
			t.Errorf("expected GoogleID 'sub-999', got %q", created.GoogleID)
		}
		if created.PasswordHash != "" {
			t.Errorf("expected empty password hash for federated account, got %q", created.PasswordHash)
		}
	})

	t.Run("verification failure", func(t *testing.T) {
		verifier := &mockGoogleVerifier{
			VerifyFunc: func(ctx context.Context, idToken string) (*GoogleClaims, error) {
				return nil, errors.New("signature mismatch")
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{}, verifier)
		_, err := uc.GoogleLogin(ctx, "forged-token")

		if !errors.Is(err, ErrInvalidGoogleToken) {
			t.Errorf("expected ErrInvalidGoogleToken, got %v", err)
		}
	})

	t.Run("repeat login reuses the existing user", func(t *testing.T) {
		existing := &entity.User{
			ID:           "33333333-3333-3333-3333-333333333333",
			Email:        "linked@example.com",
			Name:         "Linked User",
			PasswordHash: "$2a$10$existinghash",
			GoogleID:     "",
		}
		mockRepo := &mockUserRepository{
			FindOrCreateByGoogleFunc: func(ctx context.Context, user *entity.User) (*entity.User, error) {
				return existing, nil // 既存アカウントに相乗り
			},
		}
		verifier := &mockGoogleVerifier{
			VerifyFunc: func(ctx context.Context, idToken string) (*GoogleClaims, error) {
				return &GoogleClaims{Email: "linked@example.com", Name: "Linked User", GoogleID: "sub-1"}, nil
			},
		}
		mockTokens := &mockTokenGenerator{
			GenerateTokenFunc: func(subject string) (string, error) {
				if subject != existing.Email {
					t.Errorf("token must be issued for the stored user, got subject %q", subject)
				}
				return "mock-access-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens, verifier)
		if _, err := uc.GoogleLogin(ctx, "google-id-token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAuthUsecase_CurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves user by subject", func(t *testing.T) {
		testUser := &entity.User{ID: "u1", Email: "me@example.com", Name: "Me"}
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email != "me@example.com" {
					t.Errorf("unexpected email: %q", email)
				}
				return testUser, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenGenerator{}, &mockGoogleVerifier{})
		user, err := uc.CurrentUser(ctx, "Me@Example.com")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != "u1" {
			t.Errorf("expected user u1, got %q", user.ID)
		}
	})

	t.Run("unknown subject", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenGenerator{}, &mockGoogleVerifier{})
		_, err := uc.CurrentUser(ctx, "gone@example.com")

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
