package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Lookup LookupConfig `yaml:"lookup" mapstructure:"lookup"`
	Model  ModelConfig  `yaml:"model" mapstructure:"model"`
	Gemini GeminiConfig `yaml:"gemini" mapstructure:"gemini"`
	Vision VisionConfig `yaml:"vision" mapstructure:"vision"`
	Claude ClaudeConfig `yaml:"claude" mapstructure:"claude"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// LookupConfig configures the parcel-to-account lookup table.
type LookupConfig struct {
	TablePath string `yaml:"table_path" mapstructure:"table_path"`
}

// ModelConfig selects the vision classifier backend and its rate limit.
type ModelConfig struct {
	Provider       string  `yaml:"provider" mapstructure:"provider"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// VisionConfig holds Google Cloud Vision settings.
type VisionConfig struct {
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
}

// ClaudeConfig holds Anthropic API settings.
type ClaudeConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// BatchConfig configures batch folder processing.
type BatchConfig struct {
	MaxConcurrentFolders int `yaml:"max_concurrent_folders" mapstructure:"max_concurrent_folders"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultSQLitePath returns the per-user run database location.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "runs.db"
	}
	return filepath.Join(home, ".mls-photo-cli", "runs.db")
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MLSPHOTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", DefaultSQLitePath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("batch.max_concurrent_folders", 4)
	v.SetDefault("model.provider", "gemini")
	v.SetDefault("model.requests_per_sec", 2.0)
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")

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

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode
// (process, batch, serve). It collects all problems into a single error.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "process", "batch", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "sqlite", "none":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
	default:
		problems = append(problems, "store.driver must be sqlite, postgres, or none")
	}

	switch c.Model.Provider {
	case "gemini":
		if c.Gemini.Key == "" {
			problems = append(problems, "gemini.key is required")
		}
	case "vision":
	case "claude":
		if c.Claude.Key == "" {
			problems = append(problems, "claude.key is required")
		}
	case "none":
	default:
		problems = append(problems, "model.provider must be gemini, vision, claude, or none")
	}

	if c.Model.RequestsPerSec <= 0 {
		problems = append(problems, "model.requests_per_sec must be > 0")
	}

	if mode == "batch" && (c.Batch.MaxConcurrentFolders < 1 || c.Batch.MaxConcurrentFolders > 32) {
		problems = append(problems, "batch.max_concurrent_folders must be between 1 and 32")
	}

	if mode == "serve" && c.Server.Port <= 0 {
		problems = append(problems, "server.port must be > 0")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
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
