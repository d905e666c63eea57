package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
)

const catalogKey = "voices:catalog"

// CatalogCache serves the voice catalog from memory for ttl and delegates
// synthesis untouched. Concurrent misses may each hit the provider; the
// last writer wins, which is harmless for an immutable catalog.
type CatalogCache struct {
	repositories.SpeechRepository
	store  *MemoryStore[[]entities.Voice]
	ttl    time.Duration
	logger *zap.Logger
}

// Ensure CatalogCache implements SpeechRepository
var _ repositories.SpeechRepository = (*CatalogCache)(nil)

// NewCatalogCache wraps next with a catalog cache. A non-positive ttl
// disables caching.
func NewCatalogCache(next repositories.SpeechRepository, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{
		SpeechRepository: next,
		store:            NewMemoryStore[[]entities.Voice](0),
		ttl:              ttl,
		logger:           logger,
	}
}

// ListVoices returns the cached catalog or fetches a fresh one
func (c *CatalogCache) ListVoices(ctx context.Context) ([]entities.Voice, error) {
	if c.ttl <= 0 {
		return c.SpeechRepository.ListVoices(ctx)
	}

	if voices, ok := c.store.Get(catalogKey); ok {
		return voices, nil
	}

	voices, err := c.SpeechRepository.ListVoices(ctx)
	if err != nil {
		return nil, err
	}

	c.store.Set(catalogKey, voices, c.ttl)
	if c.logger != nil {
		c.logger.Info("voice catalog refreshed",
			zap.Int("voices", len(voices)),
			zap.Duration("ttl", c.ttl))
	}
	return voices, nil
}

// Invalidate drops the cached catalog
func (c *CatalogCache) Invalidate() {
	c.store.Delete(catalogKey)
}
