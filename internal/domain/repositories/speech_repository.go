package repositories

import (
	"context"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

// SpeechRepository is the remote text-to-speech provider
type SpeechRepository interface {
	// ListVoices returns the provider's full voice catalog
	ListVoices(ctx context.Context) ([]entities.Voice, error)

	// Synthesize converts an SSML document into a WAV payload
	Synthesize(ctx context.Context, ssml []byte) ([]byte, error)
}

// CatalogInvalidator is implemented by speech repositories that cache the
// voice catalog
type CatalogInvalidator interface {
	Invalidate()
}
