// Package config loads application configuration from file and environment
// and owns global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openlead/leadgen-cli/internal/scorer"
)

// Config holds the full application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Dedup    DedupConfig    `yaml:"dedup" mapstructure:"dedup"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Export   ExportConfig   `yaml:"export" mapstructure:"export"`
	Retry    RetryConfig    `yaml:"retry" mapstructure:"retry"`
	Circuit  CircuitConfig  `yaml:"circuit" mapstructure:"circuit"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PipelineConfig configures the collection run.
type PipelineConfig struct {
	Workers          int  `yaml:"workers" mapstructure:"workers"`
	EnableDedup      bool `yaml:"enable_dedup" mapstructure:"enable_dedup"`
	EnableEnrichment bool `yaml:"enable_enrichment" mapstructure:"enable_enrichment"`
	EnableScoring    bool `yaml:"enable_scoring" mapstructure:"enable_scoring"`
}

// ScoringConfig configures lead scoring.
type ScoringConfig struct {
	Weights  scorer.Weights `yaml:"weights" mapstructure:"weights"`
	MinScore float64        `yaml:"min_score" mapstructure:"min_score"`
}

// DedupConfig configures identity matching.
type DedupConfig struct {
	NameSimilarityThreshold float64 `yaml:"name_similarity_threshold" mapstructure:"name_similarity_threshold"`
}

// SourcesConfig locates the source catalog.
type SourcesConfig struct {
	Catalog string `yaml:"catalog" mapstructure:"catalog"`
}

// ExportConfig configures output.
type ExportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
}

// RetryConfig holds flat retry settings for API sources.
type RetryConfig struct {
	MaxAttempts      int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffMs int     `yaml:"initial_backoff_ms" mapstructure:"initial_backoff_ms"`
	MaxBackoffMs     int     `yaml:"max_backoff_ms" mapstructure:"max_backoff_ms"`
	Multiplier       float64 `yaml:"multiplier" mapstructure:"multiplier"`
	JitterFraction   float64 `yaml:"jitter_fraction" mapstructure:"jitter_fraction"`
}

// CircuitConfig holds flat circuit-breaker settings for API sources.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	ResetTimeoutSecs int `yaml:"reset_timeout_secs" mapstructure:"reset_timeout_secs"`
}

// ServerConfig configures the status server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("pipeline.workers", 3)
	v.SetDefault("pipeline.enable_dedup", true)
	v.SetDefault("pipeline.enable_enrichment", true)
	v.SetDefault("pipeline.enable_scoring", true)
	v.SetDefault("scoring.weights.intent", 0.35)
	v.SetDefault("scoring.weights.fit", 0.30)
	v.SetDefault("scoring.weights.tech", 0.20)
	v.SetDefault("scoring.weights.engagement", 0.15)
	v.SetDefault("scoring.min_score", 0.0)
	v.SetDefault("dedup.name_similarity_threshold", 0.85)
	v.SetDefault("sources.catalog", "sources.yaml")
	v.SetDefault("export.format", "json")
	v.SetDefault("export.path", "leads.json")
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_ms", 500)
	v.SetDefault("retry.max_backoff_ms", 30000)
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.jitter_fraction", 0.25)
	v.SetDefault("circuit.failure_threshold", 5)
	v.SetDefault("circuit.reset_timeout_secs", 30)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline would choke on later.
// A bad config fails the process at startup, never mid-run.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 0 {
		return eris.Errorf("config: pipeline.workers must be positive, got %d", c.Pipeline.Workers)
	}
	if c.Scoring.MinScore < 0 || c.Scoring.MinScore > 100 {
		return eris.Errorf("config: scoring.min_score %.2f outside [0,100]", c.Scoring.MinScore)
	}
	if t := c.Dedup.NameSimilarityThreshold; t != 0 && (t <= 0 || t > 1) {
		return eris.Errorf("config: dedup.name_similarity_threshold %.2f outside (0,1]", t)
	}
	w := c.Scoring.Weights
	for name, val := range map[string]float64{
		"intent":     w.Intent,
		"fit":        w.Fit,
		"tech":       w.Tech,
		"engagement": w.Engagement,
	} {
		if val < 0 {
			return eris.Errorf("config: scoring.weights.%s must not be negative", name)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return eris.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	switch c.Export.Format {
	case "", "csv", "json", "xlsx":
	default:
		return eris.Errorf("config: export.format %q is not supported", c.Export.Format)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
