package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidWeight indicates a non-positive field weight.
	ErrInvalidWeight = errors.New("invalid scoring weight")

	// ErrInvalidBM25Param indicates an out-of-range BM25F parameter.
	ErrInvalidBM25Param = errors.New("invalid bm25f parameter")

	// ErrInvalidRRFK indicates a non-positive RRF constant.
	ErrInvalidRRFK = errors.New("invalid rrf_k")

	// ErrEmptyOutputDir indicates a missing index output directory.
	ErrEmptyOutputDir = errors.New("empty index output_dir")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScoring(&cfg.Scoring); err != nil {
		errs = append(errs, err)
	}
	if err := validateIndex(&cfg.Index); err != nil {
		errs = append(errs, err)
	}

	return joinErrors(errs)
}

func validateScoring(cfg *ScoringConfig) error {
	var errs []error

	if cfg.FilenameWeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: filename_weight must be positive, got %.2f", ErrInvalidWeight, cfg.FilenameWeight))
	}
	if cfg.SymbolsWeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: symbols_weight must be positive, got %.2f", ErrInvalidWeight, cfg.SymbolsWeight))
	}
	if cfg.BodyWeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: body_weight must be positive, got %.2f", ErrInvalidWeight, cfg.BodyWeight))
	}

	if cfg.BM25K1 <= 0 {
		errs = append(errs, fmt.Errorf("%w: bm25_k1 must be positive, got %.2f", ErrInvalidBM25Param, cfg.BM25K1))
	}
	if cfg.BM25B < 0 || cfg.BM25B > 1 {
		errs = append(errs, fmt.Errorf("%w: bm25_b must be in [0,1], got %.2f", ErrInvalidBM25Param, cfg.BM25B))
	}

	if cfg.RRFK <= 0 {
		errs = append(errs, fmt.Errorf("%w: rrf_k must be positive, got %d", ErrInvalidRRFK, cfg.RRFK))
	}

	return joinErrors(errs)
}

func validateIndex(cfg *IndexConfig) error {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("%w", ErrEmptyOutputDir)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
