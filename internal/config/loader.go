package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (TOPO_*)
// 2. Config file (.topo/config.yml or .topo/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".topo")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("TOPO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("scoring.filename_weight")
	v.BindEnv("scoring.symbols_weight")
	v.BindEnv("scoring.body_weight")
	v.BindEnv("scoring.bm25_k1")
	v.BindEnv("scoring.bm25_b")
	v.BindEnv("scoring.rrf_k")
	v.BindEnv("scoring.enable_pagerank")
	v.BindEnv("scoring.enable_git_recency")
	v.BindEnv("budget.max_bytes")
	v.BindEnv("budget.max_tokens")
	v.BindEnv("index.output_dir")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("paths.exclude", d.Paths.Exclude)

	v.SetDefault("scoring.filename_weight", d.Scoring.FilenameWeight)
	v.SetDefault("scoring.symbols_weight", d.Scoring.SymbolsWeight)
	v.SetDefault("scoring.body_weight", d.Scoring.BodyWeight)
	v.SetDefault("scoring.bm25_k1", d.Scoring.BM25K1)
	v.SetDefault("scoring.bm25_b", d.Scoring.BM25B)
	v.SetDefault("scoring.rrf_k", d.Scoring.RRFK)
	v.SetDefault("scoring.enable_pagerank", d.Scoring.EnablePageRank)
	v.SetDefault("scoring.enable_git_recency", d.Scoring.EnableGitRecency)

	v.SetDefault("budget.max_bytes", d.Budget.MaxBytes)
	v.SetDefault("budget.max_tokens", d.Budget.MaxTokens)

	v.SetDefault("index.output_dir", d.Index.OutputDir)
}

// LoadConfig is a convenience function that creates a loader and loads
// config using the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
