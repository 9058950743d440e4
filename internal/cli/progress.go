package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// BuildStats summarizes one scan+index run for the completion banner.
type BuildStats struct {
	TotalFiles    int
	TotalChunks   int
	GraphNodes    int
	GraphEdges    int
	ElapsedSecond float64
}

// ProgressReporter receives progress callbacks from the scan/index/graph
// pipeline driven by the `index` subcommand.
type ProgressReporter interface {
	OnScanStart()
	OnScanComplete(totalFiles int)
	OnIndexStart(totalFiles int)
	OnFileIndexed(path string)
	OnGraphBuildStart(totalFiles int)
	OnGraphFileProcessed()
	OnGraphBuildComplete(nodeCount, edgeCount int, duration time.Duration)
	OnComplete(stats BuildStats)
}

// CLIProgressReporter renders progress bars for scan, index, and graph
// build phases, or stays silent in quiet mode.
type CLIProgressReporter struct {
	quiet     bool
	indexBar  *progressbar.ProgressBar
	graphBar  *progressbar.ProgressBar
	startTime time.Time
}

func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet, startTime: time.Now()}
}

func (c *CLIProgressReporter) OnScanStart() {
	if c.quiet {
		return
	}
	log.Println("Scanning repository...")
}

func (c *CLIProgressReporter) OnScanComplete(totalFiles int) {
	if c.quiet {
		return
	}
	log.Printf("Found %s files\n", formatNumber(totalFiles))
}

func (c *CLIProgressReporter) OnIndexStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.indexBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Building index"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}

func (c *CLIProgressReporter) OnFileIndexed(path string) {
	if c.quiet || c.indexBar == nil {
		return
	}
	c.indexBar.Add(1)
}

func (c *CLIProgressReporter) OnGraphBuildStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.graphBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Resolving import graph"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}

func (c *CLIProgressReporter) OnGraphFileProcessed() {
	if c.quiet || c.graphBar == nil {
		return
	}
	c.graphBar.Add(1)
}

func (c *CLIProgressReporter) OnGraphBuildComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	if c.graphBar != nil {
		c.graphBar.Finish()
		c.graphBar = nil
	}
	fmt.Printf("✓ Graph resolved: %s nodes, %s edges (%.1fs)\n",
		formatNumber(nodeCount), formatNumber(edgeCount), duration.Seconds())
}

func (c *CLIProgressReporter) OnComplete(stats BuildStats) {
	if c.quiet {
		return
	}
	fmt.Println()
	fmt.Printf("✓ Indexing complete: %s files, %s chunks in %.1fs\n",
		formatNumber(stats.TotalFiles), formatNumber(stats.TotalChunks), stats.ElapsedSecond)
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
