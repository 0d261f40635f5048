// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Storage
	DataFile    string `json:"data_file,omitempty"`    // Path to the JSON collection file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; wins over DataFile
	Owner       string `json:"owner,omitempty"`        // Collection owner key for the database store

	// AI provider
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key
	ScoringModel string `json:"scoring_model,omitempty"` // Model for ATS analysis
	WritingModel string `json:"writing_model,omitempty"` // Model for text enhancement

	// Server
	Port               int  `json:"port,omitempty"`                  // HTTP listen port
	RateLimitPerMinute int  `json:"rate_limit_per_minute,omitempty"` // Sustained AI calls per client per minute
	RateLimitBurst     int  `json:"rate_limit_burst,omitempty"`      // AI call burst per client
	RateLimitDisabled  bool `json:"rate_limit_disabled,omitempty"`   // Turn off AI rate limiting entirely

	// Candidate profile, seeded into fresh documents
	ProfileName  string `json:"profile_name,omitempty"`  // Candidate name
	ProfileEmail string `json:"profile_email,omitempty"` // Candidate email

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults used when neither config file nor flags provide a value.
const (
	DefaultPort               = 8080
	DefaultDataFile           = "resume-documents.json"
	DefaultOwner              = "default"
	DefaultRateLimitPerMinute = 10
	DefaultRateLimitBurst     = 5
)

// EnvAPIKey is the environment variable consulted when no API key is
// configured. godotenv loads .env into the environment before this is read.
const EnvAPIKey = "GEMINI_API_KEY"

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit_per_minute' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults, then from the package constants. CLI flags should already be
// applied to the receiver; bools are never merged because unset and false
// are indistinguishable.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataFile == "" {
		result.DataFile = defaults.DataFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Owner == "" {
		result.Owner = defaults.Owner
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ScoringModel == "" {
		result.ScoringModel = defaults.ScoringModel
	}
	if result.WritingModel == "" {
		result.WritingModel = defaults.WritingModel
	}
	if result.ProfileName == "" {
		result.ProfileName = defaults.ProfileName
	}
	if result.ProfileEmail == "" {
		result.ProfileEmail = defaults.ProfileEmail
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = defaults.RateLimitPerMinute
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	if result.DataFile == "" {
		result.DataFile = DefaultDataFile
	}
	if result.Owner == "" {
		result.Owner = DefaultOwner
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.RateLimitPerMinute == 0 {
		result.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = DefaultRateLimitBurst
	}
	if result.APIKey == "" {
		result.APIKey = os.Getenv(EnvAPIKey)
	}

	return result
}
