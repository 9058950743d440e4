package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/core"
	"github.com/Demwunz/topo/internal/model"
)

var (
	scoreTask      string
	scoreMaxBytes  uint64
	scoreMaxTokens uint64
	scoreFormat    string
)

var scoreCmd = &cobra.Command{
	Use:   "score [path]",
	Short: "Rank a repository's files by relevance to a task",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if scoreTask == "" {
			return fmt.Errorf("--task is required")
		}
		switch scoreFormat {
		case "jsonl", "human":
		default:
			return fmt.Errorf("unsupported --format %q (only jsonl and human are implemented)", scoreFormat)
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		engine := core.New(root, config.Default())
		idx, err := engine.LoadIndex()
		if err != nil {
			return fmt.Errorf("load index: %w", err)
		}
		if idx == nil {
			return fmt.Errorf("no index found under %s; run `topo index` first", root)
		}

		bundle, err := engine.Scan()
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}

		var budget *model.TokenBudget
		if scoreMaxBytes > 0 {
			budget = &model.TokenBudget{}
			b := scoreMaxBytes
			budget.MaxBytes = &b
		}
		if scoreMaxTokens > 0 {
			if budget == nil {
				budget = &model.TokenBudget{}
			}
			t := scoreMaxTokens
			budget.MaxTokens = &t
		}

		scored, err := engine.Score(core.Query{Task: scoreTask, Files: bundle.Files, Budget: budget}, *idx)
		if err != nil {
			return fmt.Errorf("score: %w", err)
		}

		return renderScored(scored, scoreFormat)
	},
}

func renderScored(files []model.ScoredFile, format string) error {
	switch format {
	case "jsonl":
		enc := json.NewEncoder(os.Stdout)
		for _, f := range files {
			if err := enc.Encode(f); err != nil {
				return fmt.Errorf("encode %s: %w", f.Path, err)
			}
		}
	case "human":
		for _, f := range files {
			fmt.Printf("%8.4f  %-60s  %8d tok  %s/%s\n", f.Score, f.Path, f.Tokens, f.Language, f.Role)
		}
	}
	return nil
}

func init() {
	scoreCmd.Flags().StringVar(&scoreTask, "task", "", "natural-language description of the task (required)")
	scoreCmd.Flags().Uint64Var(&scoreMaxBytes, "max-bytes", 0, "byte budget for the returned file set (0 = unbounded)")
	scoreCmd.Flags().Uint64Var(&scoreMaxTokens, "max-tokens", 0, "token budget for the returned file set (0 = unbounded)")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "jsonl", "output format: jsonl or human")
	rootCmd.AddCommand(scoreCmd)
}
