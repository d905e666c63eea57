package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Speech    SpeechConfig
	Secrets   SecretsConfig
	Redis     RedisConfig
	Catalog   CatalogConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout int           `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5m"`
	MaxUploadSize   string        `envconfig:"MAX_UPLOAD_SIZE" default:"10M"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string        `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"STORAGE_BUCKET" default:"text-to-speech-files"`
	Region          string        `envconfig:"STORAGE_REGION" default:"us-east-1"`
	UseSSL          bool          `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"STORAGE_PUBLIC_URL"`
	URLExpiry       time.Duration `envconfig:"STORAGE_URL_EXPIRY" default:"1h"`
}

// SpeechConfig holds speech provider configuration
type SpeechConfig struct {
	// EndpointTemplate is formatted with the region, e.g. https://eastus.tts.speech.microsoft.com
	EndpointTemplate string        `envconfig:"SPEECH_ENDPOINT_TEMPLATE" default:"https://%s.tts.speech.microsoft.com"`
	OutputFormat     string        `envconfig:"SPEECH_OUTPUT_FORMAT" default:"riff-24khz-16bit-mono-pcm"`
	Timeout          time.Duration `envconfig:"SPEECH_TIMEOUT" default:"60s"`
	MaxRetryTime     time.Duration `envconfig:"SPEECH_MAX_RETRY_TIME" default:"20s"`
	EnglishLocale    string        `envconfig:"SPEECH_ENGLISH_LOCALE" default:"en-US"`
	EnglishMale      string        `envconfig:"SPEECH_ENGLISH_MALE_VOICE" default:"en-US-GuyNeural"`
	EnglishFemale    string        `envconfig:"SPEECH_ENGLISH_FEMALE_VOICE" default:"en-US-JennyNeural"`
}

// SecretsConfig selects where speech credentials come from
type SecretsConfig struct {
	// Backend is "env" or "redis"
	Backend  string        `envconfig:"SECRETS_BACKEND" default:"env"`
	Name     string        `envconfig:"SECRETS_NAME" default:"azure-secrets"`
	CacheTTL time.Duration `envconfig:"SECRETS_CACHE_TTL" default:"15m"`
	APIKey   string        `envconfig:"AZURE_API_KEY"`
	Region   string        `envconfig:"AZURE_REGION" default:"eastus"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CatalogConfig controls voice catalog caching
type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"VOICE_CATALOG_TTL" default:"1h"`
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"transcript-dubber"`
	TraceStdout  bool   `envconfig:"OTEL_TRACE_STDOUT" default:"false"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() (*Config, error) {
	config := &Config{}

	// Sections are processed without a prefix so every field is read from
	// the bare variable named in its tag.
	sections := []interface{}{
		&config.Server,
		&config.Storage,
		&config.Speech,
		&config.Secrets,
		&config.Redis,
		&config.Catalog,
		&config.Telemetry,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to parse environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Secrets.Backend {
	case "env":
		if c.Secrets.APIKey == "" {
			return fmt.Errorf("AZURE_API_KEY is required when SECRETS_BACKEND=env")
		}
	case "redis":
		if c.Secrets.Name == "" {
			return fmt.Errorf("SECRETS_NAME is required when SECRETS_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unsupported SECRETS_BACKEND %q", c.Secrets.Backend)
	}
	if !strings.Contains(c.Speech.EndpointTemplate, "%s") {
		return fmt.Errorf("SPEECH_ENDPOINT_TEMPLATE must contain %%s for the region")
	}
	if c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}
	if c.Storage.URLExpiry <= 0 {
		return fmt.Errorf("STORAGE_URL_EXPIRY must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// SpeechEndpoint returns the provider base URL for region
func (c *SpeechConfig) SpeechEndpoint(region string) string {
	return strings.TrimRight(fmt.Sprintf(c.EndpointTemplate, region), "/")
}
