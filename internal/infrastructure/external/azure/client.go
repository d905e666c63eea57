// Package azure is a client for the Azure Cognitive Services Speech REST API.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
	"github.com/johnquangdev/transcript-dubber/pkg/config"
	"github.com/johnquangdev/transcript-dubber/pkg/runcontext"
)

const (
	voicesPath     = "/cognitiveservices/voices/list"
	synthesizePath = "/cognitiveservices/v1"

	headerSubscriptionKey = "Ocp-Apim-Subscription-Key"
	headerOutputFormat    = "X-Microsoft-OutputFormat"
	contentTypeSSML       = "application/ssml+xml"
	userAgent             = "transcript-dubber"

	// maxErrorBody bounds how much of a failed response is kept for diagnostics
	maxErrorBody = 4 << 10
)

// ProviderError carries the status and body of a failed provider call
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("speech provider returned status %d: %s", e.Status, e.Body)
}

// Client talks to the speech provider
type Client struct {
	cfg           config.SpeechConfig
	creds         repositories.CredentialRepository
	client        *http.Client
	logger        *zap.Logger
	retryInterval time.Duration
}

// Ensure Client implements SpeechRepository
var _ repositories.SpeechRepository = (*Client)(nil)

// NewClient creates a speech client. Credentials are looked up on every call
// so a caching source can rotate them.
func NewClient(cfg *config.SpeechConfig, creds repositories.CredentialRepository, logger *zap.Logger) *Client {
	return &Client{
		cfg:           *cfg,
		creds:         creds,
		client:        &http.Client{Timeout: cfg.Timeout},
		logger:        logger,
		retryInterval: 500 * time.Millisecond,
	}
}

// ListVoices fetches the full voice catalog
func (c *Client) ListVoices(ctx context.Context) ([]entities.Voice, error) {
	body, err := c.call(ctx, entities.ErrProviderUnavailable, func(base, key string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+voicesPath, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set(headerSubscriptionKey, key)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var voices []entities.Voice
	if err := json.Unmarshal(body, &voices); err != nil {
		return nil, fmt.Errorf("%w: invalid voice catalog: %v", entities.ErrProviderUnavailable, err)
	}

	if c.logger != nil {
		c.logger.Info("voice catalog fetched", zap.Int("voices", len(voices)))
	}
	return voices, nil
}

// Synthesize converts an SSML document into audio in the configured format
func (c *Client) Synthesize(ctx context.Context, ssml []byte) ([]byte, error) {
	audio, err := c.call(ctx, entities.ErrSynthesisFailed, func(base, key string) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+synthesizePath, bytes.NewReader(ssml))
		if err != nil {
			return nil, err
		}
		req.Header.Set(headerSubscriptionKey, key)
		req.Header.Set("Content-Type", contentTypeSSML)
		req.Header.Set(headerOutputFormat, c.cfg.OutputFormat)
		req.Header.Set("User-Agent", userAgent)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.Info("speech synthesized", append(runcontext.LogFields(ctx),
			zap.Int("ssml_bytes", len(ssml)),
			zap.Int("audio_bytes", len(audio)))...)
	}
	return audio, nil
}

// call runs one provider request with retries. Transport errors, 429 and 5xx
// are retried; other 4xx are final except a single 401/403, which drops
// cached credentials and tries again with fresh ones.
func (c *Client) call(ctx context.Context, kind error, build func(base, key string) (*http.Request, error)) ([]byte, error) {
	var (
		out       []byte
		refreshed bool
	)

	op := func() error {
		creds, err := c.creds.Credentials(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}

		req, err := build(c.cfg.SpeechEndpoint(creds.Region), creds.APIKey)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", kind, err))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", kind, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("%w: failed to read response: %v", kind, err)
			}
			out = body
			return nil
		}

		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		perr := fmt.Errorf("%w: %w", kind, &ProviderError{Status: resp.StatusCode, Body: string(snippet)})

		if c.logger != nil {
			c.logger.Warn("speech provider call failed", append(runcontext.LogFields(ctx),
				zap.String("url", req.URL.Path),
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(snippet)))...)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			inv, ok := c.creds.(repositories.CredentialInvalidator)
			if !ok || refreshed {
				return backoff.Permanent(perr)
			}
			refreshed = true
			inv.Invalidate()
			return perr
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return perr
		default:
			return backoff.Permanent(perr)
		}
	}

	if err := backoff.Retry(op, backoff.WithContext(c.policy(), ctx)); err != nil {
		if !errors.Is(err, kind) && !errors.Is(err, entities.ErrProviderUnavailable) {
			err = fmt.Errorf("%w: %v", kind, err)
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) policy() backoff.BackOff {
	if c.cfg.MaxRetryTime <= 0 {
		// still allow the one credential refresh
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = c.cfg.MaxRetryTime
	return bo
}
