// Package cache provides caching decorators for usecase interfaces.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"legalai_backend/internal/feature/documents/usecase"
)

// CachingSummarizer decorates a Summarizer with Redis caching keyed by the
// SHA-256 of the input text. The same document uploaded twice reuses the
// previous summary instead of calling the model again. Cache failures are
// best effort and never fail the request.
type CachingSummarizer struct {
	inner     usecase.Summarizer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingSummarizerがSummarizerを実装していることをコンパイル時に検証します。
var _ usecase.Summarizer = (*CachingSummarizer)(nil)

// NewCachingSummarizer decorates a Summarizer with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "summaries".
func NewCachingSummarizer(rdb *redis.Client, ttl time.Duration, inner usecase.Summarizer, namespace string) *CachingSummarizer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "summaries"
	}
	return &CachingSummarizer{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Summarize returns a cached summary when available, otherwise delegates to
// the underlying summarizer and stores the result.
func (c *CachingSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Summarize(ctx, text)
	}

	key := c.cacheKey(text)

	// 1) Check cache
	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
		return cached, nil
	}

	// 2) Fall back to the model
	summary, err := c.inner.Summarize(ctx, text)
	if err != nil {
		return "", err
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, summary, c.ttl).Err()

	return summary, nil
}

// cacheKey generates a cache key from the content hash.
func (c *CachingSummarizer) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%s", c.namespace, hex.EncodeToString(sum[:]))
}
