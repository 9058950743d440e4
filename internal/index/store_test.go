package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Demwunz/topo/internal/model"
)

func sampleIndex() model.DeepIndex {
	return model.DeepIndex{
		Version:      CurrentVersion,
		TotalDocs:    2,
		AvgDocLength: 3.5,
		DocFrequencies: map[string]uint32{
			"func": 2,
			"main": 1,
		},
		Files: map[string]model.FileEntry{
			"main.go": {
				SHA256:    sha("package main"),
				DocLength: 4,
				TermFrequencies: map[string]model.TermFreqs{
					"main": {Filename: 1, Body: 2},
				},
				Chunks: []model.Chunk{
					{Kind: model.ChunkFunction, Name: "Run", StartLine: 3, EndLine: 5},
				},
				RawImports: []string{"fmt"},
			},
		},
		PageRankScores: map[string]float64{"main.go": 1.0},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, ".topo")
	want := sampleIndex()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil index after Save")
	}
	if got.TotalDocs != want.TotalDocs || got.AvgDocLength != want.AvgDocLength {
		t.Errorf("got = %+v, want %+v", got, want)
	}
	entry := got.Files["main.go"]
	if entry.SHA256 != want.Files["main.go"].SHA256 {
		t.Error("SHA256 mismatch after round-trip")
	}
	if len(entry.Chunks) != 1 || entry.Chunks[0].Name != "Run" {
		t.Errorf("chunks mismatch after round-trip: %+v", entry.Chunks)
	}
	if got.PageRankScores["main.go"] != 1.0 {
		t.Errorf("PageRankScores mismatch: %+v", got.PageRankScores)
	}
}

func TestStore_LoadMissingReturnsNilNil(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, ".topo")

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load on empty dir = %+v, want nil", got)
	}
}

func TestStore_LoadRejectsStaleVersion(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, ".topo")

	if CurrentVersion == 0 {
		t.Skip("CurrentVersion is 0, cannot construct a lower version")
	}
	stale := sampleIndex()
	stale.Version = CurrentVersion - 1
	if err := s.Save(stale); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != nil {
		t.Errorf("Load of a stale-version index = %+v, want nil (forces rebuild)", got)
	}
}

func TestStore_LoadLegacyJSON(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, ".topo")
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		t.Fatal(err)
	}

	legacy := legacyStoredIndex{
		Version:      CurrentVersion,
		TotalDocs:    1,
		AvgDocLength: 2.0,
		DocFrequencies: map[string]uint32{
			"main": 1,
		},
		Files: map[string]legacyFileEntry{
			"main.go": {
				SHA256:    sha("x")[:],
				DocLength: 2,
				TermFrequencies: map[string]storedTermFreqs{
					"main": {Filename: 1, Body: 1},
				},
				Chunks: []storedChunk{
					{Kind: "function", Name: "Run", StartLine: 1, EndLine: 1},
				},
			},
		},
	}
	data, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.dir(), "index.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load of legacy JSON returned nil, want a decoded index")
	}
	if got.TotalDocs != 1 {
		t.Errorf("TotalDocs = %d, want 1", got.TotalDocs)
	}
	entry, ok := got.Files["main.go"]
	if !ok {
		t.Fatal("missing main.go in legacy-loaded index")
	}
	wantSHA := sha("x")
	if entry.SHA256 != wantSHA {
		t.Error("SHA256 not correctly copied from legacy byte slice into fixed array")
	}
}

func TestStore_SaveDeletesLegacyFile(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root, ".topo")
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	legacyPath := filepath.Join(s.dir(), "index.json")
	if err := os.WriteFile(legacyPath, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Save(sampleIndex()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(legacyPath); !os.IsNotExist(err) {
		t.Error("expected legacy index.json to be removed after Save")
	}
}
