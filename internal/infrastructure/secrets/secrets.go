// Package secrets resolves speech provider credentials from the
// environment or a remote secret store, with an optional in-memory cache.
package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
)

// ErrMalformedSecret is returned when a secret payload does not match the
// expected schema. Parsing fails closed.
var ErrMalformedSecret = errors.New("malformed secret")

// ParseSecret decodes a secret payload of the form
// {"AZURE_API_KEY": "...", "AZURE_REGION": "..."}.
// Unknown fields, missing values and trailing data are rejected.
func ParseSecret(raw []byte) (repositories.SpeechCredentials, error) {
	var creds repositories.SpeechCredentials

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&creds); err != nil {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: trailing data", ErrMalformedSecret)
	}

	creds.APIKey = strings.TrimSpace(creds.APIKey)
	creds.Region = strings.TrimSpace(creds.Region)
	if creds.APIKey == "" || creds.Region == "" {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: AZURE_API_KEY and AZURE_REGION are required", ErrMalformedSecret)
	}
	return creds, nil
}

// StaticSource returns fixed credentials, typically read from the environment
type StaticSource struct {
	creds repositories.SpeechCredentials
}

// Ensure StaticSource implements CredentialRepository
var _ repositories.CredentialRepository = (*StaticSource)(nil)

// NewStaticSource creates a source that always returns apiKey and region
func NewStaticSource(apiKey, region string) *StaticSource {
	return &StaticSource{creds: repositories.SpeechCredentials{APIKey: apiKey, Region: region}}
}

// Credentials returns the configured credentials
func (s *StaticSource) Credentials(ctx context.Context) (repositories.SpeechCredentials, error) {
	if s.creds.APIKey == "" || s.creds.Region == "" {
		return repositories.SpeechCredentials{}, fmt.Errorf("%w: speech credentials not configured", entities.ErrProviderUnavailable)
	}
	return s.creds, nil
}
