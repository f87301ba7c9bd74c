package di

import (
	"context"
	"time"

	"legalai_backend/internal/feature/auth/adapters/google"
	infrahttp "legalai_backend/internal/platform/http"
)

// federationTimeout bounds the call to Google's verification endpoint so a
// slow provider cannot hang requests indefinitely.
const federationTimeout = 10 * time.Second

// NewGoogleVerifier creates the Google ID token verifier with a bounded-timeout HTTP client.
func NewGoogleVerifier(ctx context.Context, clientID string) (*google.Verifier, error) {
	httpClient := infrahttp.NewHTTPClient(federationTimeout)
	return google.NewVerifier(ctx, clientID, httpClient)
}
