package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Demwunz/topo/internal/config"
	"github.com/Demwunz/topo/internal/model"
)

func writeRepoFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newTestEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Scoring.EnableGitRecency = false
	return New(root, cfg), root
}

func TestEngine_ScanFindsWrittenFiles(t *testing.T) {
	e, root := newTestEngine(t)
	writeRepoFile(t, root, "src/auth/handler.go", "package auth\nfunc Authenticate() bool { return true }")
	writeRepoFile(t, root, "README.md", "# project")

	bundle, err := e.Scan()
	require.NoError(t, err)
	require.Len(t, bundle.Files, 2)
}

func TestEngine_BuildSaveLoadIndexRoundTrip(t *testing.T) {
	e, root := newTestEngine(t)
	writeRepoFile(t, root, "src/auth/handler.go", "package auth\nfunc Authenticate() bool { return true }")

	bundle, err := e.Scan()
	require.NoError(t, err)

	result, err := e.BuildIndex(bundle)
	require.NoError(t, err)
	require.Len(t, result.Index.Files, 1)

	require.NoError(t, e.SaveIndex(result.Index))

	loaded, err := e.LoadIndex()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Files, 1)
}

func TestEngine_LoadIndexMissingReturnsNilNil(t *testing.T) {
	e, _ := newTestEngine(t)
	idx, err := e.LoadIndex()
	require.NoError(t, err)
	require.Nil(t, idx, "a fresh repo has no saved index yet")
}

func TestEngine_ScoreRanksMatchingFileFirst(t *testing.T) {
	e, root := newTestEngine(t)
	writeRepoFile(t, root, "src/auth/handler.go", "package auth\nfunc Authenticate(token string) bool { return true }")
	writeRepoFile(t, root, "src/widgets/render.go", "package widgets\nfunc Render() {}")

	bundle, err := e.Scan()
	require.NoError(t, err)
	result, err := e.BuildIndex(bundle)
	require.NoError(t, err)

	scored, err := e.Score(Query{Task: "authenticate token", Files: bundle.Files}, result.Index)
	require.NoError(t, err)
	require.NotEmpty(t, scored)
	require.Equal(t, "src/auth/handler.go", scored[0].Path)
}

func TestEngine_ScoreAppliesBudget(t *testing.T) {
	e, root := newTestEngine(t)
	writeRepoFile(t, root, "a.go", "package a\nfunc A() {}")
	writeRepoFile(t, root, "b.go", "package b\nfunc B() {}")

	bundle, err := e.Scan()
	require.NoError(t, err)
	result, err := e.BuildIndex(bundle)
	require.NoError(t, err)

	zero := uint64(0)
	scored, err := e.Score(Query{Task: "a", Files: bundle.Files, Budget: &model.TokenBudget{MaxTokens: &zero}}, result.Index)
	require.NoError(t, err)
	require.Len(t, scored, 1, "budget keeps the first file even when it exceeds the cap")
}
