package config

// Config is topo's complete configuration, loadable from .topo/config.yml
// with environment variable overrides (CORTEX_* prefix retained as TOPO_*).
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Budget  BudgetConfig  `yaml:"budget" mapstructure:"budget"`
	Index   IndexConfig   `yaml:"index" mapstructure:"index"`
}

// PathsConfig defines which files to scan and which to ignore, on top of
// .gitignore and the hard-blocked directories (spec.md §4.1).
type PathsConfig struct {
	Exclude []string `yaml:"exclude" mapstructure:"exclude"` // extra glob patterns to exclude
}

// ScoringConfig tunes the BM25F + heuristic + PageRank hybrid scorer
// (spec.md §4.6/§4.7).
type ScoringConfig struct {
	FilenameWeight   float64 `yaml:"filename_weight" mapstructure:"filename_weight"`
	SymbolsWeight    float64 `yaml:"symbols_weight" mapstructure:"symbols_weight"`
	BodyWeight       float64 `yaml:"body_weight" mapstructure:"body_weight"`
	BM25K1           float64 `yaml:"bm25_k1" mapstructure:"bm25_k1"`
	BM25B            float64 `yaml:"bm25_b" mapstructure:"bm25_b"`
	RRFK             int     `yaml:"rrf_k" mapstructure:"rrf_k"`
	EnablePageRank   bool    `yaml:"enable_pagerank" mapstructure:"enable_pagerank"`
	EnableGitRecency bool    `yaml:"enable_git_recency" mapstructure:"enable_git_recency"`
}

// BudgetConfig sets the default output bounds applied by score() when the
// caller doesn't override them (spec.md §4.8).
type BudgetConfig struct {
	MaxBytes  uint64 `yaml:"max_bytes" mapstructure:"max_bytes"`
	MaxTokens uint64 `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// IndexConfig controls where the persisted DeepIndex lives (spec.md §4.9).
type IndexConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// Default returns a configuration with sensible defaults, matching the
// named constants pinned by SPEC_FULL.md's scenario tests.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Exclude: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
			},
		},
		Scoring: ScoringConfig{
			FilenameWeight:   3.0,
			SymbolsWeight:    2.0,
			BodyWeight:       1.0,
			BM25K1:           1.2,
			BM25B:            0.75,
			RRFK:             60,
			EnablePageRank:   true,
			EnableGitRecency: false,
		},
		Budget: BudgetConfig{
			MaxBytes:  0,
			MaxTokens: 0,
		},
		Index: IndexConfig{
			OutputDir: ".topo",
		},
	}
}
