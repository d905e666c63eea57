package secrets

import (
	"context"
	"time"

	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/cache"
)

const credentialsKey = "speech:credentials"

// CachedSource keeps credentials in memory for ttl. Callers that get an
// authentication failure call Invalidate and retry to pick up rotated keys.
type CachedSource struct {
	next  repositories.CredentialRepository
	store *cache.MemoryStore[repositories.SpeechCredentials]
	ttl   time.Duration
}

var (
	_ repositories.CredentialRepository  = (*CachedSource)(nil)
	_ repositories.CredentialInvalidator = (*CachedSource)(nil)
)

// NewCachedSource wraps next with a process-wide cache
func NewCachedSource(next repositories.CredentialRepository, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		store: cache.NewMemoryStore[repositories.SpeechCredentials](0),
		ttl:   ttl,
	}
}

// Credentials returns cached credentials or loads fresh ones
func (s *CachedSource) Credentials(ctx context.Context) (repositories.SpeechCredentials, error) {
	if creds, ok := s.store.Get(credentialsKey); ok {
		return creds, nil
	}

	creds, err := s.next.Credentials(ctx)
	if err != nil {
		return repositories.SpeechCredentials{}, err
	}
	s.store.Set(credentialsKey, creds, s.ttl)
	return creds, nil
}

// Invalidate forgets the cached credentials
func (s *CachedSource) Invalidate() {
	s.store.Delete(credentialsKey)
}
