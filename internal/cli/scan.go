package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/core"
)

var scanQuiet bool

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository and report its file set and fingerprint",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		reporter := NewCLIProgressReporter(scanQuiet)
		reporter.OnScanStart()

		engine := core.New(root, config.Default())
		bundle, err := engine.Scan()
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		reporter.OnScanComplete(len(bundle.Files))

		fmt.Fprintf(os.Stdout, "fingerprint: %s\n", bundle.Fingerprint)
		fmt.Fprintf(os.Stdout, "files: %d\n", len(bundle.Files))
		fmt.Fprintf(os.Stdout, "estimated tokens: %d\n", bundle.TotalTokens())
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(scanCmd)
}
