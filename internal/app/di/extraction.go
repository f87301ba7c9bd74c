// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"legalai_backend/internal/feature/documents/adapters/gemini"
	"legalai_backend/internal/feature/documents/adapters/vision"
	"legalai_backend/internal/feature/documents/usecase"
	"legalai_backend/internal/platform/cache"
)

// NewTextExtractor creates the Vision-backed text extractor.
func NewTextExtractor(ctx context.Context) (*vision.VisionTextExtractor, error) {
	return vision.NewVisionTextExtractor(ctx)
}

// NewSummarizer creates the Gemini summarizer, wrapped with a Redis cache
// when a client is available. With rdb == nil the decorator is a pass-through.
func NewSummarizer(ctx context.Context, rdb *redis.Client) (usecase.Summarizer, error) {
	summarizer, err := gemini.NewGeminiSummarizer(ctx)
	if err != nil {
		return nil, err
	}
	return cache.NewCachingSummarizer(rdb, 24*time.Hour, summarizer, "summaries"), nil
}
