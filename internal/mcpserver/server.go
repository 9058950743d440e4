package mcpserver

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/core"
	"github.com/Demwunz/topo/internal/model"
	"github.com/Demwunz/topo/internal/search"
	"github.com/Demwunz/topo/internal/watcher"
)

// maxExactIndexFileBytes bounds how much of a file's content topo_exact
// loads into memory per file, so one huge generated asset can't blow the
// in-memory bleve index.
const maxExactIndexFileBytes = 1 << 20 // 1 MiB

// Server is the MCP tool server: one Engine plus a live exact-match index,
// both rebuilt on every triggered rescan. Grounded on internal/mcp/server.go's
// MCPServer lifecycle.
type Server struct {
	engine  *core.Engine
	watcher watcher.FileWatcher
	mcp     *server.MCPServer

	mu       sync.RWMutex
	bundle   model.Bundle
	index    model.DeepIndex
	searcher search.ExactSearcher
}

// New builds a Server rooted at root, running an initial scan+build_index
// pass so the first tool call has something to score against.
func New(ctx context.Context, root string, cfg *config.Config) (*Server, error) {
	engine := core.New(root, cfg)

	fw, err := watcher.NewFileWatcher([]string{root})
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"topo-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{
		engine:  engine,
		watcher: fw,
		mcp:     mcpServer,
	}

	if err := s.rebuild(ctx); err != nil {
		return nil, fmt.Errorf("initial scan/index: %w", err)
	}

	addScoreTool(mcpServer, s)
	addScanTool(mcpServer, s)
	addIndexTool(mcpServer, s)
	addExactTool(mcpServer, s)

	return s, nil
}

// rebuild runs a full scan + build_index + save_index pass and refreshes
// the in-memory exact-match index, replacing all live state atomically.
func (s *Server) rebuild(ctx context.Context) error {
	bundle, err := s.engine.Scan()
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	result, err := s.engine.BuildIndex(bundle)
	if err != nil {
		return fmt.Errorf("build_index: %w", err)
	}
	if err := s.engine.SaveIndex(result.Index); err != nil {
		return fmt.Errorf("save_index: %w", err)
	}

	docs := buildDocuments(s.engine.Root(), bundle)
	newSearcher, err := search.NewExactSearcher(ctx, docs)
	if err != nil {
		return fmt.Errorf("build exact index: %w", err)
	}

	s.mu.Lock()
	oldSearcher := s.searcher
	s.bundle = bundle
	s.index = result.Index
	s.searcher = newSearcher
	s.mu.Unlock()

	if oldSearcher != nil {
		oldSearcher.Close()
	}
	return nil
}

func buildDocuments(root string, bundle model.Bundle) []search.Document {
	docs := make([]search.Document, 0, len(bundle.Files))
	for _, f := range bundle.Files {
		if f.Size > maxExactIndexFileBytes {
			continue
		}
		content, err := os.ReadFile(joinRepoPath(root, f.Path))
		if err != nil {
			continue
		}
		docs = append(docs, search.Document{
			Path:     f.Path,
			Content:  string(content),
			Role:     f.Role,
			Language: f.Language,
		})
	}
	return docs
}

func joinRepoPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func (s *Server) snapshot() (model.Bundle, model.DeepIndex, search.ExactSearcher) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle, s.index, s.searcher
}

// Serve starts the file watcher and the MCP stdio server, blocking until a
// shutdown signal arrives, the MCP transport errors, or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.watcher.Start(ctx, func(changed []string) {
		requestID := uuid.New().String()
		log.Printf("[%s] detected %d changed path(s), triggering rescan", requestID, len(changed))
		if err := s.rebuild(ctx); err != nil {
			log.Printf("[%s] rescan failed: %v", requestID, err)
		}
	}); err != nil {
		return fmt.Errorf("start file watcher: %w", err)
	}
	defer s.watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting topo MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the exact-match index and stops the file watcher.
func (s *Server) Close() error {
	s.watcher.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searcher != nil {
		return s.searcher.Close()
	}
	return nil
}
