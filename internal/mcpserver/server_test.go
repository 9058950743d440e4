package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/model"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestNew_RunsInitialScanAndBuildsExactIndex(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/auth/handler.go", "package auth\nfunc Authenticate(token string) bool { return true }")

	ctx := context.Background()
	srv, err := New(ctx, root, config.Default())
	require.NoError(t, err)
	defer srv.Close()

	bundle, index, searcher := srv.snapshot()
	require.Len(t, bundle.Files, 1)
	require.Len(t, index.Files, 1)
	require.NotNil(t, searcher, "expected a non-nil exact searcher after initial build")

	results, err := searcher.Search(ctx, "Authenticate", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "src/auth/handler.go", results[0].Path)
}

func TestRebuild_PicksUpNewFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.go", "package a\nfunc A() {}")

	ctx := context.Background()
	srv, err := New(ctx, root, config.Default())
	require.NoError(t, err)
	defer srv.Close()

	writeTestFile(t, root, "b.go", "package b\nfunc B() {}")
	require.NoError(t, srv.rebuild(ctx))

	bundle, _, _ := srv.snapshot()
	require.Len(t, bundle.Files, 2, "expected b.go to be picked up after a rebuild")
}

func TestToScoredFiles_CarriesSignalBreakdown(t *testing.T) {
	pr := 0.5
	files := []model.ScoredFile{
		{Path: "a.go", Score: 1.5, Tokens: 10, Language: model.LangGo, Role: model.RoleImplementation,
			Signals: model.SignalBreakdown{BM25F: 1.0, Heuristic: 0.5, PageRank: &pr}},
	}

	out := toScoredFiles(files)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].PageRank)
	require.Equal(t, 0.5, *out[0].PageRank)
	require.Equal(t, 1.0, out[0].BM25F)
	require.Equal(t, 0.5, out[0].Heuristic)
}
