// Package config provides configuration loading and validation for the careers page.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for the deployment this service was built for.
const (
	DefaultPort              = 8080
	DefaultGreenhouseBaseURL = "https://harvest.greenhouse.io"
	DefaultOnBehalfOf        = "4280249007"
	DefaultJobID             = int64(4285367007)
	DefaultJobCacheTTL       = "1m"
)

// Config holds everything the relays and the page need. Credentials live here and are handed
// to the ATS client at construction; nothing else reads them.
type Config struct {
	Port int `json:"port,omitempty"`

	// ATS
	GreenhouseAPIKey  string `json:"greenhouse_api_key,omitempty"`  // Harvest API key (Basic auth username)
	GreenhouseBaseURL string `json:"greenhouse_base_url,omitempty"` // Harvest API host
	OnBehalfOf        string `json:"on_behalf_of,omitempty"`        // Greenhouse user id writes are attributed to

	// Job
	JobID       int64    `json:"job_id,omitempty"`        // The one job this page serves
	Skills      []string `json:"skills,omitempty"`        // Placeholder skill tags
	Description string   `json:"description,omitempty"`   // Fallback description when the job has no notes
	JobCacheTTL string   `json:"job_cache_ttl,omitempty"` // Duration string; "0" disables caching
}

// Defaults returns the built-in configuration. It carries no API key.
func Defaults() Config {
	return Config{
		Port:              DefaultPort,
		GreenhouseBaseURL: DefaultGreenhouseBaseURL,
		OnBehalfOf:        DefaultOnBehalfOf,
		JobID:             DefaultJobID,
		JobCacheTTL:       DefaultJobCacheTTL,
	}
}

// FromEnv reads only the environment variables that are set. Unset values stay zero so the
// result can be layered over a config file with MergeWithDefaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GreenhouseAPIKey:  os.Getenv("GREENHOUSE_API_KEY"),
		GreenhouseBaseURL: os.Getenv("GREENHOUSE_BASE_URL"),
		OnBehalfOf:        os.Getenv("GREENHOUSE_ON_BEHALF_OF"),
		Skills:            splitList(os.Getenv("JOB_SKILLS")),
		Description:       os.Getenv("JOB_DESCRIPTION"),
		JobCacheTTL:       os.Getenv("JOB_CACHE_TTL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("JOB_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid JOB_ID: %v", err)
		}
		cfg.JobID = id
	}
	return cfg, nil
}

// Load layers overrides (usually command-line flags) over the environment, the optional
// JSON config file at path and the defaults. GREENHOUSE_API_KEY is required.
func Load(path string, overrides Config) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	cfg := overrides.MergeWithDefaults(*env)
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*file)
	}
	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Require(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Require validates the configuration and checks that an API key is present.
func (c *Config) Require() error {
	if c.GreenhouseAPIKey == "" {
		return fmt.Errorf("GREENHOUSE_API_KEY is required but not set")
	}
	return c.Validate()
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
// A missing API key is not checked here; Require and the ATS client enforce it.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.JobID < 0 {
		return fmt.Errorf("config error: 'job_id' must be positive")
	}
	if c.GreenhouseBaseURL != "" &&
		!strings.HasPrefix(c.GreenhouseBaseURL, "http://") && !strings.HasPrefix(c.GreenhouseBaseURL, "https://") {
		return fmt.Errorf("config error: 'greenhouse_base_url' must be an http(s) URL")
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses JobCacheTTL. An empty value means the default; "0" disables caching.
func (c *Config) CacheTTL() (time.Duration, error) {
	raw := c.JobCacheTTL
	if raw == "" {
		raw = DefaultJobCacheTTL
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'job_cache_ttl' %q: %v", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'job_cache_ttl' must not be negative")
	}
	return d, nil
}

// JobIDString returns the job id in the form the ATS path expects.
func (c *Config) JobIDString() string {
	return strconv.FormatInt(c.JobID, 10)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layers apply as flags, then environment, then config file, then Defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GreenhouseAPIKey == "" {
		result.GreenhouseAPIKey = defaults.GreenhouseAPIKey
	}
	if result.GreenhouseBaseURL == "" {
		result.GreenhouseBaseURL = defaults.GreenhouseBaseURL
	}
	if result.OnBehalfOf == "" {
		result.OnBehalfOf = defaults.OnBehalfOf
	}
	if result.Description == "" {
		result.Description = defaults.Description
	}
	if result.JobCacheTTL == "" {
		result.JobCacheTTL = defaults.JobCacheTTL
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.JobID == 0 {
		result.JobID = defaults.JobID
	}

	if len(result.Skills) == 0 && len(defaults.Skills) > 0 {
		result.Skills = append([]string(nil), defaults.Skills...)
	}

	return result
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
