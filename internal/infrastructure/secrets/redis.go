package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
)

// RedisSource reads a JSON secret stored under a fixed key
type RedisSource struct {
	client redis.Cmdable
	name   string
}

// Ensure RedisSource implements CredentialRepository
var _ repositories.CredentialRepository = (*RedisSource)(nil)

// NewRedisSource creates a source reading secret name from client
func NewRedisSource(client redis.Cmdable, name string) *RedisSource {
	return &RedisSource{client: client, name: name}
}

// Credentials fetches and strictly decodes the secret
func (s *RedisSource) Credentials(ctx context.Context) (repositories.SpeechCredentials, error) {
	raw, err := s.client.Get(ctx, s.name).Bytes()
	if errors.Is(err, redis.Nil) {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: secret %q not found", entities.ErrProviderUnavailable, s.name)
	}
	if err != nil {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: failed to read secret %q: %v", entities.ErrProviderUnavailable, s.name, err)
	}

	creds, err := ParseSecret(raw)
	if err != nil {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: secret %q: %v", entities.ErrProviderUnavailable, s.name, err)
	}
	return creds, nil
}
