package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/core"
)

var indexQuiet bool

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build (or incrementally refresh) the term/import/PageRank index",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		start := time.Now()
		reporter := NewCLIProgressReporter(indexQuiet)
		reporter.OnScanStart()

		engine := core.New(root, config.Default())
		bundle, err := engine.Scan()
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		reporter.OnScanComplete(len(bundle.Files))

		reporter.OnIndexStart(len(bundle.Files))
		result, err := engine.BuildIndex(bundle)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}

		if err := engine.SaveIndex(result.Index); err != nil {
			return fmt.Errorf("save index: %w", err)
		}

		totalChunks := 0
		for _, entry := range result.Index.Files {
			totalChunks += len(entry.Chunks)
		}

		reporter.OnComplete(BuildStats{
			TotalFiles:    len(bundle.Files),
			TotalChunks:   totalChunks,
			GraphNodes:    len(result.Index.PageRankScores),
			ElapsedSecond: time.Since(start).Seconds(),
		})
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVarP(&indexQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(indexCmd)
}
