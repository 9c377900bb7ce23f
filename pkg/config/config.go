package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database  DatabaseConfig  `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Validator ValidatorConfig `yaml:"validator" json:"validator" jsonschema:"description=Website validation configuration"`
	Discovery DiscoveryConfig `yaml:"discovery" json:"discovery" jsonschema:"description=Feed discovery configuration"`
	Collector CollectorConfig `yaml:"collector" json:"collector" jsonschema:"description=Feed collection configuration"`
	Sync      SyncConfig      `yaml:"sync" json:"sync" jsonschema:"description=Periodic sync configuration"`
	LLM       LLMConfig       `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM configuration for event categorization"`
	Sources   []SourceConfig  `yaml:"sources" json:"sources" jsonschema:"description=Calendar sources registered on startup"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5m,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in generated feeds"`
}

// DatabaseConfig holds event store settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:civicfeed.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ValidatorConfig holds website validation thresholds
type ValidatorConfig struct {
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxRedirects      int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=5,description=Maximum number of redirects to follow"`
	BatchSize         int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=3,minimum=1,description=Concurrent requests per validation batch"`
	BatchPause        time.Duration `yaml:"batch_pause" json:"batch_pause" jsonschema:"default=1s,description=Pause between validation batches"`
	MinBodyLength     int           `yaml:"min_body_length" json:"min_body_length" jsonschema:"default=200,description=Bodies shorter than this are insufficient content"`
	QualityLength     int           `yaml:"quality_length" json:"quality_length" jsonschema:"default=500,description=Minimum body length for non-government content quality"`
	GovernmentPhrases int           `yaml:"government_phrases" json:"government_phrases" jsonschema:"default=3,description=Distinct government phrases needed for content-based leniency"`
}

// DiscoveryConfig holds feed discovery settings and scoring weights
type DiscoveryConfig struct {
	Timeout              time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Probe request timeout"`
	MaxCandidatesPerType int           `yaml:"max_candidates_per_type" json:"max_candidates_per_type" jsonschema:"default=4,description=Maximum website candidates probed per organization type"`
	ValidateWebsites     bool          `yaml:"validate_websites" json:"validate_websites" jsonschema:"default=true,description=Discard candidates whose website fails validation"`
	Scores               ScoreConfig   `yaml:"scores" json:"scores" jsonschema:"description=Confidence scoring weights"`
}

// ScoreConfig holds confidence weights for discovery signals
type ScoreConfig struct {
	ExplicitFeed  float64 `yaml:"explicit_feed" json:"explicit_feed" jsonschema:"default=0.9,description=Base score for a declared feed link"`
	JSONAPI       float64 `yaml:"json_api" json:"json_api" jsonschema:"default=0.75,description=Base score for a calendar JSON endpoint"`
	Affordance    float64 `yaml:"affordance" json:"affordance" jsonschema:"default=0.6,description=Base score for subscribe/export links"`
	Heuristic     float64 `yaml:"heuristic" json:"heuristic" jsonschema:"default=0.3,description=Base score for a guessed calendar path"`
	Corroboration float64 `yaml:"corroboration" json:"corroboration" jsonschema:"default=0.05,description=Bonus per additional corroborating signal"`
	Government    float64 `yaml:"government" json:"government" jsonschema:"default=0.05,description=Bonus for government domains"`
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence" jsonschema:"default=0.25,description=Candidates below this confidence are dropped"`
}

// CollectorConfig holds feed collection settings
type CollectorConfig struct {
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; civicfeed/1.0),description=User agent for feed requests"`
	Horizon        time.Duration `yaml:"horizon" json:"horizon" jsonschema:"default=2160h,description=How far ahead recurring events are expanded"`
	MaxOccurrences int           `yaml:"max_occurrences" json:"max_occurrences" jsonschema:"default=100,description=Maximum occurrences per recurring event"`
	EnrichEvents   int           `yaml:"enrich_events" json:"enrich_events" jsonschema:"default=0,minimum=0,description=Events per collection whose empty description is filled from the event page (0 disables)"`
	FormatPriority []string      `yaml:"format_priority" json:"format_priority" jsonschema:"description=Preferred feed formats in order"`
}

// SyncConfig holds periodic sync settings
type SyncConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Run periodic sync of all active sources"`
	Schedule string `yaml:"schedule" json:"schedule" jsonschema:"default=@every 6h,description=Cron schedule for periodic sync"`
}

// LLMConfig holds optional LLM settings for event categorization
type LLMConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Categorize events with an LLM"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	BatchSize   int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=20,minimum=1,description=Events categorized per request"`
}

// SourceConfig describes a calendar source registered on startup
type SourceConfig struct {
	Name    string `yaml:"name" json:"name" jsonschema:"required,description=Display name"`
	City    string `yaml:"city" json:"city" jsonschema:"required,description=City name"`
	State   string `yaml:"state" json:"state" jsonschema:"required,description=Two-letter state code"`
	Type    string `yaml:"type" json:"type" jsonschema:"required,enum=city,enum=school,enum=chamber,enum=library,enum=parks,description=Organization type"`
	URL     string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Website string `yaml:"website" json:"website" jsonschema:"description=Website URL"`
	Format  string `yaml:"format" json:"format" jsonschema:"required,enum=ical,enum=rss,enum=webcal,enum=json,enum=html,description=Feed format"`
	Active  *bool  `yaml:"active" json:"active" jsonschema:"default=true,description=Source is collected during sync"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	// keys missing from the file keep their defaults, explicit zero and false values stay
	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.SetDefaults()

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file is given
// and as the base a config file is decoded over
func Default() *Config {
	cfg := &Config{}
	cfg.Discovery.ValidateWebsites = true
	cfg.Discovery.Scores.Corroboration = 0.05
	cfg.Discovery.Scores.Government = 0.05
	cfg.Sync.Enabled = true
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills zero values with defaults. Bools and bonuses where zero is meaningful
// are set by Default only.
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 5 * time.Minute
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:civicfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// validator
	if c.Validator.Timeout == 0 {
		c.Validator.Timeout = 30 * time.Second
	}
	if c.Validator.MaxRedirects == 0 {
		c.Validator.MaxRedirects = 5
	}
	if c.Validator.BatchSize == 0 {
		c.Validator.BatchSize = 3
	}
	if c.Validator.BatchPause == 0 {
		c.Validator.BatchPause = time.Second
	}
	if c.Validator.MinBodyLength == 0 {
		c.Validator.MinBodyLength = 200
	}
	if c.Validator.QualityLength == 0 {
		c.Validator.QualityLength = 500
	}
	if c.Validator.GovernmentPhrases == 0 {
		c.Validator.GovernmentPhrases = 3
	}

	// discovery
	if c.Discovery.Timeout == 0 {
		c.Discovery.Timeout = 20 * time.Second
	}
	if c.Discovery.MaxCandidatesPerType == 0 {
		c.Discovery.MaxCandidatesPerType = 4
	}
	c.Discovery.Scores.setDefaults()

	// collector
	if c.Collector.Timeout == 0 {
		c.Collector.Timeout = 30 * time.Second
	}
	if c.Collector.UserAgent == "" {
		c.Collector.UserAgent = "Mozilla/5.0 (compatible; civicfeed/1.0)"
	}
	if c.Collector.Horizon == 0 {
		c.Collector.Horizon = 90 * 24 * time.Hour
	}
	if c.Collector.MaxOccurrences == 0 {
		c.Collector.MaxOccurrences = 100
	}
	if len(c.Collector.FormatPriority) == 0 {
		c.Collector.FormatPriority = []string{"ical", "webcal", "json", "rss", "html"}
	}

	// sync
	if c.Sync.Schedule == "" {
		c.Sync.Schedule = "@every 6h"
	}

	// llm
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.BatchSize == 0 {
		c.LLM.BatchSize = 20
	}
}

func (s *ScoreConfig) setDefaults() {
	if s.ExplicitFeed == 0 {
		s.ExplicitFeed = 0.9
	}
	if s.JSONAPI == 0 {
		s.JSONAPI = 0.75
	}
	if s.Affordance == 0 {
		s.Affordance = 0.6
	}
	if s.Heuristic == 0 {
		s.Heuristic = 0.3
	}
	if s.MinConfidence == 0 {
		s.MinConfidence = 0.25
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Validator.BatchSize < 1 {
		return fmt.Errorf("validator.batch_size must be at least 1")
	}
	if cfg.Validator.MinBodyLength > cfg.Validator.QualityLength {
		return fmt.Errorf("validator.min_body_length must not exceed validator.quality_length")
	}
	if cfg.Collector.EnrichEvents < 0 {
		return fmt.Errorf("collector.enrich_events must be non-negative")
	}
	if cfg.Validator.MaxRedirects < 0 {
		return fmt.Errorf("validator.max_redirects must be non-negative")
	}
	for _, v := range []float64{cfg.Discovery.Scores.ExplicitFeed, cfg.Discovery.Scores.JSONAPI,
		cfg.Discovery.Scores.Affordance, cfg.Discovery.Scores.Heuristic, cfg.Discovery.Scores.MinConfidence,
		cfg.Discovery.Scores.Corroboration, cfg.Discovery.Scores.Government} {
		if v < 0 || v > 1 {
			return fmt.Errorf("discovery scores must be between 0 and 1")
		}
	}
	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required when llm is enabled")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}
	for i, src := range cfg.Sources {
		if src.URL == "" || src.Name == "" || src.City == "" || src.State == "" {
			return fmt.Errorf("sources[%d]: name, city, state and url are required", i)
		}
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
