package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string
	IsProduction  bool
	IsDevelopment bool

	// Logging
	LogLevel string
	LogFile  string

	// Source table; empty means the built-in registry
	SourcesFile string

	// Fetch policy
	FetchTimeout    time.Duration
	DelayMin        time.Duration
	DelayMax        time.Duration
	CompareDeadline time.Duration
	RateLimitRPS    float64

	// Summarizer
	AnthropicAPIKey      string
	AnthropicModel       string
	// AnthropicTemperature is nil when unset so the summarizer default applies
	AnthropicTemperature *float64

	// MongoDB comparison history; empty URI disables it
	MongoDBURI      string
	MongoDBDatabase string

	// Discord Bot Configuration
	DiscordToken  string
	CommandPrefix string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
		SourcesFile:     getEnv("SOURCES_FILE", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-haiku-4-5-20251001"),
		MongoDBURI:      getEnv("MONGODB_URI", ""),
		MongoDBDatabase: getEnv("MONGODB_DATABASE", ""),
		DiscordToken:    getEnv("DISCORD_TOKEN", ""),
		CommandPrefix:   getEnv("COMMAND_PREFIX", "!"),
	}

	// Derived properties
	cfg.IsProduction = cfg.Environment == "production"
	cfg.IsDevelopment = !cfg.IsProduction

	if cfg.MongoDBDatabase == "" {
		cfg.MongoDBDatabase = "pricecompare"
		if cfg.IsDevelopment {
			cfg.MongoDBDatabase = "pricecompare_dev"
		}
	}

	// Parse numeric values
	var err error
	if cfg.FetchTimeout, err = getSeconds("FETCH_TIMEOUT_SECONDS", 10); err != nil {
		return nil, err
	}
	if cfg.CompareDeadline, err = getSeconds("COMPARE_DEADLINE_SECONDS", 0); err != nil {
		return nil, err
	}
	if cfg.DelayMin, err = getMillis("DELAY_MIN_MS", 1000); err != nil {
		return nil, err
	}
	if cfg.DelayMax, err = getMillis("DELAY_MAX_MS", 3000); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64); err != nil {
		return nil, eris.Wrap(err, "RATE_LIMIT_RPS must be a number")
	}
	if v := getEnv("ANTHROPIC_TEMPERATURE", ""); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, eris.Wrap(err, "ANTHROPIC_TEMPERATURE must be a number")
		}
		cfg.AnthropicTemperature = &t
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all values are in range
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 {
		return eris.New("FETCH_TIMEOUT_SECONDS must be positive")
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return eris.Errorf("invalid delay window %s..%s", c.DelayMin, c.DelayMax)
	}
	if c.CompareDeadline < 0 {
		return eris.New("COMPARE_DEADLINE_SECONDS must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return eris.New("RATE_LIMIT_RPS must not be negative")
	}
	if t := c.AnthropicTemperature; t != nil && (*t < 0 || *t > 1) {
		return eris.Errorf("ANTHROPIC_TEMPERATURE must be between 0 and 1, got %g", *t)
	}
	return nil
}

// ValidateBot checks the settings the Discord bot needs on top of Validate
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return eris.New("DISCORD_TOKEN environment variable is required")
	}
	if c.CommandPrefix == "" {
		return eris.New("COMMAND_PREFIX must not be empty")
	}
	return nil
}

// HistoryEnabled reports whether comparisons are recorded in MongoDB
func (c *Config) HistoryEnabled() bool {
	return c.MongoDBURI != ""
}

// SummarizerEnabled reports whether an Anthropic key is configured
func (c *Config) SummarizerEnabled() bool {
	return c.AnthropicAPIKey != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getSeconds(key string, def int) (time.Duration, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return 0, eris.Wrapf(err, "%s must be an integer", key)
	}
	return time.Duration(n) * time.Second, nil
}

func getMillis(key string, def int) (time.Duration, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		return 0, eris.Wrapf(err, "%s must be an integer", key)
	}
	return time.Duration(n) * time.Millisecond, nil
}
