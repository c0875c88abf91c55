// Package config loads the importer configuration: YAML with environment
// variable expansion, plus a small set of env-only overrides for store
// credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the importer.
type Config struct {
	Languages []string
	Limit     int
	Days      int
	Keywords  []string
	Sources   []SourceConfig
	Retry     RetryConfig
	AI        AIConfig
	Geocoder  GeocoderConfig
	Store     StoreConfig
}

// SourceConfig describes one source entry. Name selects the adapter;
// the credential fields apply to the adapters that need them. Sources are
// processed in the order they appear in the file.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled

	AppID  string `yaml:"app_id"`  // adzuna
	AppKey string `yaml:"app_key"` // adzuna
	APIKey string `yaml:"api_key"` // jooble
	Query  string `yaml:"query"`  // jooble search keywords

	Feeds map[string][]string `yaml:"feeds"` // rss: language -> feed URLs
}

// IsEnabled reports whether the source should be wired at all.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// RetryConfig controls the retry decorator around sources and enrichment.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// AIConfig controls the OpenAI categorization layer.
type AIConfig struct {
	Enabled bool
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // OpenAI model identifier, e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load
	Timeout time.Duration // per-request timeout
}

// GeocoderConfig controls the Google geocoding layer.
type GeocoderConfig struct {
	Enabled bool
	APIKey  string
}

// StoreConfig selects the document store. URI schemes decide the backend:
// mongodb:// (or mongodb+srv://) and sqlite://.
type StoreConfig struct {
	URI      string
	Database string
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultDatabase      = "itjobhub"
)

var defaultLanguages = []string{"en", "it", "es", "fr", "de"}

// defaultKeywords is the built-in relevance list applied to titles when the
// config does not override it.
var defaultKeywords = []string{
	"developer", "engineer", "programmer", "devops", "sviluppatore",
	"programmatore", "desarrollador", "développeur", "entwickler",
	"software", "backend", "frontend", "full stack", "fullstack",
	"data scientist", "data engineer", "machine learning", "sre",
	"sysadmin", "cloud", "qa", "tester", "android", "ios",
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations
// as strings).
type rawConfig struct {
	Languages []string          `yaml:"languages"`
	Limit     int               `yaml:"limit"`
	Days      *int              `yaml:"days"`
	Keywords  []string          `yaml:"keywords"`
	Sources   []SourceConfig    `yaml:"sources"`
	Retry     rawRetryConfig    `yaml:"retry"`
	AI        rawAIConfig       `yaml:"ai"`
	Geocoder  rawGeocoderConfig `yaml:"geocoder"`
	Store     rawStoreConfig    `yaml:"store"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawAIConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

type rawGeocoderConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

type rawStoreConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	days := 1
	if raw.Days != nil {
		days = *raw.Days
	}

	maxRetries := 3
	if raw.Retry.MaxRetries != nil {
		maxRetries = *raw.Retry.MaxRetries
	}

	baseDelay := 1 * time.Second
	if raw.Retry.BaseDelay != "" {
		baseDelay, err = time.ParseDuration(raw.Retry.BaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
		}
	}

	aiTimeout := 30 * time.Second
	if raw.AI.Timeout != "" {
		aiTimeout, err = time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
	}

	cfg := &Config{
		Languages: raw.Languages,
		Limit:     raw.Limit,
		Days:      days,
		Keywords:  raw.Keywords,
		Sources:   raw.Sources,
		Retry: RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  baseDelay,
		},
		AI: AIConfig{
			Enabled: raw.AI.Enabled,
			BaseURL: raw.AI.BaseURL,
			Model:   raw.AI.Model,
			APIKey:  raw.AI.APIKey,
			Timeout: aiTimeout,
		},
		Geocoder: GeocoderConfig{
			Enabled: raw.Geocoder.Enabled,
			APIKey:  raw.Geocoder.APIKey,
		},
		Store: StoreConfig{
			URI:      raw.Store.URI,
			Database: raw.Store.Database,
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// storeURIEnvVars is the env override order for the store URI, highest
// precedence first.
var storeURIEnvVars = []string{"MONGO_URI_STAGE", "MONGO_URI_PROD", "MONGODB_URI", "MONGO_URI"}

func applyDefaults(cfg *Config) {
	if len(cfg.Languages) == 0 {
		cfg.Languages = defaultLanguages
	}
	if cfg.Keywords == nil {
		cfg.Keywords = defaultKeywords
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultOpenAIModel
	}
	if cfg.Store.Database == "" {
		cfg.Store.Database = defaultDatabase
	}

	// Env vars beat the file for the store URI, so the same config can be
	// pointed at staging or production without edits.
	for _, name := range storeURIEnvVars {
		if v := os.Getenv(name); v != "" {
			cfg.Store.URI = v
			break
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Store.URI == "" {
		return fmt.Errorf("store.uri is required (or set one of %v)", storeURIEnvVars)
	}

	enabled := 0
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if s.IsEnabled() {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one source must be enabled")
	}

	if cfg.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", cfg.Days)
	}
	if cfg.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}

	if cfg.AI.Enabled && cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required when ai.enabled is true")
	}
	if cfg.Geocoder.Enabled && cfg.Geocoder.APIKey == "" {
		return fmt.Errorf("geocoder.api_key is required when geocoder.enabled is true")
	}

	return nil
}
