package repositories

import "context"

// SpeechCredentials authenticate calls to the speech provider
type SpeechCredentials struct {
	APIKey string `json:"AZURE_API_KEY"`
	Region string `json:"AZURE_REGION"`
}

// CredentialRepository resolves speech provider credentials
type CredentialRepository interface {
	Credentials(ctx context.Context) (SpeechCredentials, error)
}

// CredentialInvalidator is implemented by credential sources that cache
type CredentialInvalidator interface {
	Invalidate()
}
