// Package api defines the JSON request/response types shared across transport handlers.
package api

import "time"

// ErrorResponse is the common error envelope returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by /auth/login and /auth/google on success.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public representation of a user.
// The password hash and the Google subject are never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadResponse is returned after a document has been summarized.
type UploadResponse struct {
	ID           string `json:"id"`
	Summary      string `json:"summary"`
	DownloadLink string `json:"download_link"`
}

// DocumentResponse is a single entry in the document history list.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
