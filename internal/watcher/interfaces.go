// Package watcher notifies the MCP tool server of source-tree changes so it
// can trigger an unattended rescan (scan + build_index), the supplemented
// file-watcher feature from SPEC_FULL.md. Every notification leads to a full
// scan and incremental index build (§4.1/§4.4); the watcher itself holds no
// scoring state.
package watcher

import "context"

// FileWatcher monitors a repository root for changes with debouncing.
type FileWatcher interface {
	// Start begins watching, invoking callback with debounced changed paths.
	Start(ctx context.Context, callback func(changed []string)) error

	// Stop stops the watcher and releases resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks, flushing any events accumulated while paused.
	Resume()
}
