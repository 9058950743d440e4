package index

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Demwunz/topo/internal/model"
)

const indexFileName = "index.bin"

// legacyFileNames are index files written by earlier formats; a successful
// save removes them so a stale legacy file never shadows the current one.
var legacyFileNames = []string{"index.json"}

// storedIndex is the gob wire format. It mirrors model.DeepIndex field for
// field rather than being gob-encoded directly so the wire layout can
// evolve independently of the in-memory type, the same separation the
// legacy JSON store kept between its own StoredIndex and DeepIndex.
type storedIndex struct {
	Version        uint32
	TotalDocs      uint32
	AvgDocLength   float64
	DocFrequencies map[string]uint32
	Files          map[string]storedFileEntry
	PageRankScores map[string]float64
}

type storedFileEntry struct {
	SHA256          [32]byte
	DocLength       uint32
	TermFrequencies map[string]storedTermFreqs
	Chunks          []storedChunk
	RawImports      []string
}

type storedTermFreqs struct {
	Filename uint32
	Symbols  uint32
	Body     uint32
}

type storedChunk struct {
	Kind      string
	Name      string
	StartLine uint32
	EndLine   uint32
}

// legacyStoredIndex is the read-only shape of the earlier JSON format
// (sha256 as a byte slice rather than a fixed array, no PageRank scores).
type legacyStoredIndex struct {
	Version        uint32                     `json:"version"`
	TotalDocs      uint32                     `json:"total_docs"`
	AvgDocLength   float64                    `json:"avg_doc_length"`
	DocFrequencies map[string]uint32          `json:"doc_frequencies"`
	Files          map[string]legacyFileEntry `json:"files"`
}

type legacyFileEntry struct {
	SHA256          []byte                     `json:"sha256"`
	DocLength       uint32                     `json:"doc_length"`
	TermFrequencies map[string]storedTermFreqs `json:"term_frequencies"`
	Chunks          []storedChunk              `json:"chunks"`
}

// Store persists and loads a DeepIndex under <repoRoot>/<outputDir>.
type Store struct {
	repoRoot  string
	outputDir string
}

// NewStore returns a Store rooted at repoRoot, writing under outputDir
// (e.g. ".topo", per config.IndexConfig.OutputDir).
func NewStore(repoRoot, outputDir string) *Store {
	return &Store{repoRoot: repoRoot, outputDir: outputDir}
}

func (s *Store) dir() string  { return filepath.Join(s.repoRoot, s.outputDir) }
func (s *Store) path() string { return filepath.Join(s.dir(), indexFileName) }

// Save gob-encodes idx and writes it to disk, creating the output directory
// if needed, then removes any legacy-format files left over from an older
// version of this tool (§4.9).
func (s *Store) Save(idx model.DeepIndex) error {
	if err := os.MkdirAll(s.dir(), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	stored := toStored(idx)
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(stored); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	if err := os.WriteFile(s.path(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	for _, legacy := range legacyFileNames {
		_ = os.Remove(filepath.Join(s.dir(), legacy))
	}

	return nil
}

// Load reads the persisted index, if any. When index.bin does not exist it
// falls back to a legacy JSON file (loadLegacy). It returns (nil, nil) —
// "no index present" — when no usable file is found, when index.bin cannot
// be read or fails to deserialize, or when it was written by a version
// below CurrentVersion: all these cases trigger a full rebuild
// rather than risk scoring against a stale or corrupt schema (§4.9).
func (s *Store) Load() (*model.DeepIndex, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return s.loadLegacy()
		}
		return nil, nil
	}

	var stored storedIndex
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&stored); err != nil {
		return nil, nil
	}
	if stored.Version < CurrentVersion {
		return nil, nil
	}

	idx := fromStored(stored)
	return &idx, nil
}

// loadLegacy tries the old JSON index file as a read-compatibility fallback
// when no gob index exists yet. It is never written again after this load —
// the next Save replaces it with the gob format and deletes it.
func (s *Store) loadLegacy() (*model.DeepIndex, error) {
	for _, name := range legacyFileNames {
		data, err := os.ReadFile(filepath.Join(s.dir(), name))
		if err != nil {
			continue
		}

		var legacy legacyStoredIndex
		if err := json.Unmarshal(data, &legacy); err != nil {
			continue
		}
		if legacy.Version < CurrentVersion {
			continue
		}

		idx := fromLegacyStored(legacy)
		return &idx, nil
	}
	return nil, nil
}

func toStored(idx model.DeepIndex) storedIndex {
	files := make(map[string]storedFileEntry, len(idx.Files))
	for path, entry := range idx.Files {
		files[path] = storedFileEntry{
			SHA256:          entry.SHA256,
			DocLength:       entry.DocLength,
			TermFrequencies: toStoredTermFreqs(entry.TermFrequencies),
			Chunks:          toStoredChunks(entry.Chunks),
			RawImports:      entry.RawImports,
		}
	}

	return storedIndex{
		Version:        idx.Version,
		TotalDocs:      idx.TotalDocs,
		AvgDocLength:   idx.AvgDocLength,
		DocFrequencies: idx.DocFrequencies,
		Files:          files,
		PageRankScores: idx.PageRankScores,
	}
}

func fromStored(stored storedIndex) model.DeepIndex {
	files := make(map[string]model.FileEntry, len(stored.Files))
	for path, entry := range stored.Files {
		files[path] = model.FileEntry{
			SHA256:          entry.SHA256,
			DocLength:       entry.DocLength,
			TermFrequencies: fromStoredTermFreqs(entry.TermFrequencies),
			Chunks:          fromStoredChunks(entry.Chunks),
			RawImports:      entry.RawImports,
		}
	}

	return model.DeepIndex{
		Version:        stored.Version,
		TotalDocs:      stored.TotalDocs,
		AvgDocLength:   stored.AvgDocLength,
		DocFrequencies: stored.DocFrequencies,
		Files:          files,
		PageRankScores: stored.PageRankScores,
	}
}

func fromLegacyStored(legacy legacyStoredIndex) model.DeepIndex {
	files := make(map[string]model.FileEntry, len(legacy.Files))
	for path, entry := range legacy.Files {
		var sha [32]byte
		copy(sha[:], entry.SHA256)

		files[path] = model.FileEntry{
			SHA256:          sha,
			DocLength:       entry.DocLength,
			TermFrequencies: fromStoredTermFreqs(entry.TermFrequencies),
			Chunks:          fromStoredChunks(entry.Chunks),
		}
	}

	return model.DeepIndex{
		Version:        legacy.Version,
		TotalDocs:      legacy.TotalDocs,
		AvgDocLength:   legacy.AvgDocLength,
		DocFrequencies: legacy.DocFrequencies,
		Files:          files,
		PageRankScores: map[string]float64{},
	}
}

func toStoredTermFreqs(m map[string]model.TermFreqs) map[string]storedTermFreqs {
	out := make(map[string]storedTermFreqs, len(m))
	for term, tf := range m {
		out[term] = storedTermFreqs{Filename: tf.Filename, Symbols: tf.Symbols, Body: tf.Body}
	}
	return out
}

func fromStoredTermFreqs(m map[string]storedTermFreqs) map[string]model.TermFreqs {
	out := make(map[string]model.TermFreqs, len(m))
	for term, tf := range m {
		out[term] = model.TermFreqs{Filename: tf.Filename, Symbols: tf.Symbols, Body: tf.Body}
	}
	return out
}

func toStoredChunks(chunks []model.Chunk) []storedChunk {
	out := make([]storedChunk, len(chunks))
	for i, c := range chunks {
		out[i] = storedChunk{Kind: string(c.Kind), Name: c.Name, StartLine: c.StartLine, EndLine: c.EndLine}
	}
	return out
}

func fromStoredChunks(chunks []storedChunk) []model.Chunk {
	out := make([]model.Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = model.Chunk{Kind: model.ChunkKind(c.Kind), Name: c.Name, StartLine: c.StartLine, EndLine: c.EndLine}
	}
	return out
}
