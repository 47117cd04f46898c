// Package config loads and validates application configuration from
// environment variables. Startup fails fast when a required credential is
// missing; optional subsystems (mail) degrade to disabled instead.
package config

import (
	"fmt"
	"time"

	"briefcast/pkg/config"
)

// Provider identifiers for the model backend.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoop   = "noop"
)

// Store backend identifiers.
const (
	StoreFirebase = "firebase"
	StorePostgres = "postgres"
)

// AIConfig holds model-provider settings.
type AIConfig struct {
	// Provider selects the completion backend: "openai", "claude" or "noop".
	Provider string

	// APIKey authenticates against the selected provider. Required unless
	// the provider is "noop".
	APIKey string

	// Model is the provider model identifier.
	Model string

	// MaxTokens caps the completion length.
	MaxTokens int

	// Timeout bounds a single completion call.
	Timeout time.Duration

	// MaxAgentSteps bounds the tool-use loop. The loop always terminates
	// after this many tool invocations even if the model never emits a
	// final answer.
	MaxAgentSteps int
}

// Validate checks the AI configuration.
func (c *AIConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude:
		if c.APIKey == "" {
			return fmt.Errorf("model provider API key is not set")
		}
	case ProviderNoop:
	default:
		return fmt.Errorf("unknown AI provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.MaxAgentSteps <= 0 {
		return fmt.Errorf("max agent steps must be positive, got %d", c.MaxAgentSteps)
	}
	return nil
}

// SearchConfig holds web-search provider settings.
type SearchConfig struct {
	// APIKey authenticates against the search provider. Required.
	APIKey string

	// BaseURL is the search API endpoint.
	BaseURL string

	// MaxResults caps results for ad-hoc agent searches.
	MaxResults int

	// Timeout bounds a single search call.
	Timeout time.Duration
}

// Validate checks the search configuration.
func (c *SearchConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("search provider API key is not set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("search base URL cannot be empty")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", c.MaxResults)
	}
	return config.ValidatePositiveDuration(c.Timeout)
}

// NewsConfig holds digest curation settings.
type NewsConfig struct {
	// MaxArticles is the digest size N (default 10).
	MaxArticles int

	// RawResults is how many raw hits to request before extraction.
	RawResults int

	// Window is the recency window for the local filter.
	Window time.Duration

	// IncludeDomains restricts the news search to these domains.
	IncludeDomains []string

	// ExcludeDomains are removed from news search results.
	ExcludeDomains []string
}

// MailConfig holds SMTP settings for transactional email.
type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// StoreConfig selects and configures the user/chat persistence backend.
type StoreConfig struct {
	// Backend is "firebase" (default) or "postgres".
	Backend string

	// FirebaseCredentialsJSON is the service-account JSON (raw contents).
	FirebaseCredentialsJSON string

	// FirebaseDatabaseURL is the Realtime Database URL.
	FirebaseDatabaseURL string

	// DatabaseURL is the Postgres DSN for the postgres backend.
	DatabaseURL string
}

// Validate checks the store configuration.
func (c *StoreConfig) Validate() error {
	switch c.Backend {
	case StoreFirebase:
		if c.FirebaseCredentialsJSON == "" {
			return fmt.Errorf("firebase service-account credentials are not set")
		}
		if c.FirebaseDatabaseURL == "" {
			return fmt.Errorf("firebase database URL is not set")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database URL is not set")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string
	BodyLimit       int64
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// Config is the full application configuration.
type Config struct {
	AI     AIConfig
	Search SearchConfig
	News   NewsConfig
	Mail   MailConfig
	Store  StoreConfig
	Server ServerConfig
}

// defaultNewsDomains is the fixed allow-list for the news digest search.
var defaultNewsDomains = []string{
	"bbc.com", "cnn.com", "reuters.com", "apnews.com",
	"bloomberg.com", "nytimes.com", "wsj.com",
}

// Load reads the full configuration from the environment and validates the
// parts that must be present at startup. Absence of the model-provider or
// search-provider API key is a startup error.
func Load() (*Config, error) {
	provider := config.GetEnvString("AI_PROVIDER", ProviderOpenAI)

	apiKeyVar := "OPENAI_API_KEY"
	defaultModel := "gpt-3.5-turbo"
	if provider == ProviderClaude {
		apiKeyVar = "ANTHROPIC_API_KEY"
		defaultModel = "claude-sonnet-4-5-20250929"
	}

	cfg := &Config{
		AI: AIConfig{
			Provider:      provider,
			APIKey:        config.GetEnvString(apiKeyVar, ""),
			Model:         config.GetEnvString("AI_MODEL", defaultModel),
			MaxTokens:     config.GetEnvInt("AI_MAX_TOKENS", 1024),
			Timeout:       config.GetEnvDuration("AI_TIMEOUT", 60*time.Second),
			MaxAgentSteps: config.GetEnvInt("MAX_AGENT_STEPS", 5),
		},
		Search: SearchConfig{
			APIKey:     config.GetEnvString("TAVILY_API_KEY", ""),
			BaseURL:    config.GetEnvString("TAVILY_BASE_URL", "https://api.tavily.com"),
			MaxResults: config.GetEnvInt("SEARCH_MAX_RESULTS", 5),
			Timeout:    config.GetEnvDuration("SEARCH_TIMEOUT", 30*time.Second),
		},
		News: NewsConfig{
			MaxArticles:    config.GetEnvInt("NEWS_MAX_ARTICLES", 10),
			RawResults:     config.GetEnvInt("NEWS_RAW_RESULTS", 20),
			Window:         config.GetEnvDuration("NEWS_WINDOW", 7*24*time.Hour),
			IncludeDomains: config.GetEnvStringList("NEWS_INCLUDE_DOMAINS", defaultNewsDomains),
			ExcludeDomains: config.GetEnvStringList("NEWS_EXCLUDE_DOMAINS", []string{"wikipedia.org"}),
		},
		Mail: MailConfig{
			Enabled:  config.GetEnvBool("MAIL_ENABLED", true),
			Host:     config.GetEnvString("MAIL_HOST", "smtp.gmail.com"),
			Port:     config.GetEnvInt("MAIL_PORT", 587),
			Username: config.GetEnvString("MAIL_USERNAME", ""),
			Password: config.GetEnvString("MAIL_PASSWORD", ""),
			From:     config.GetEnvString("MAIL_FROM", config.GetEnvString("MAIL_USERNAME", "")),
		},
		Store: StoreConfig{
			Backend:                 config.GetEnvString("USER_STORE", StoreFirebase),
			FirebaseCredentialsJSON: config.GetEnvString("FIREBASE_CREDENTIALS_JSON", ""),
			FirebaseDatabaseURL:     config.GetEnvString("FIREBASE_DATABASE_URL", ""),
			DatabaseURL:             config.GetEnvString("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Addr:            config.GetEnvString("HTTP_ADDR", ":8080"),
			BodyLimit:       int64(config.GetEnvInt("HTTP_BODY_LIMIT", 1<<20)),
			ShutdownTimeout: config.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 5*time.Second),
			AllowedOrigins:  config.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
		},
	}

	if err := cfg.AI.Validate(); err != nil {
		return nil, fmt.Errorf("AI config: %w", err)
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, fmt.Errorf("search config: %w", err)
	}
	if err := cfg.Store.Validate(); err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}
	if cfg.News.MaxArticles <= 0 {
		return nil, fmt.Errorf("news config: max articles must be positive")
	}
	return cfg, nil
}
