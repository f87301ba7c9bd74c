// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// An account is created either by local signup (PasswordHash set) or by the
// first Google login (GoogleID set). A single email may end up with both once
// the same address authenticates through the other method.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	ID string `gorm:"primaryKey;size:36"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lowercased.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// PasswordHash is the bcrypt hash for locally registered accounts.
	// It is empty for accounts created only through Google.
	PasswordHash string `gorm:"size:255"`

	// GoogleID is the Google subject claim for federated accounts.
	// It is empty for local-only accounts.
	GoogleID string `gorm:"size:255"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// HasPassword returns true if the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
