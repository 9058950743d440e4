// Package index builds and incrementally refreshes the corpus-wide DeepIndex
// from a Bundle's scanned files (spec.md §4.4), and persists it to disk
// (§4.9, see store.go).
package index

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/Demwunz/topo/internal/chunk"
	"github.com/Demwunz/topo/internal/importgraph"
	"github.com/Demwunz/topo/internal/model"
	"github.com/Demwunz/topo/internal/pagerank"
	"github.com/Demwunz/topo/internal/tokenize"
)

// CurrentVersion is the DeepIndex schema version this build writes and the
// minimum version it will load without forcing a rebuild (§4.9).
const CurrentVersion uint32 = 1

// Builder builds a DeepIndex from a repo root and a scanned file list,
// reusing entries from an existing index whenever a file's SHA-256 is
// unchanged.
type Builder struct {
	root string
}

// NewBuilder returns a Builder rooted at repo root (absolute or relative to
// the process's working directory; FileInfo.Path is always repo-relative).
func NewBuilder(root string) *Builder {
	return &Builder{root: root}
}

// Result is the outcome of a Build call: the refreshed index plus how many
// files were actually (re)parsed rather than reused from the prior index.
type Result struct {
	Index     model.DeepIndex
	Processed int
}

// Build runs the full IndexBuilder algorithm (§4.4): parallel per-file
// chunk+tokenize with SHA-256 reuse, corpus-stat aggregation, then import
// extraction/resolution/PageRank over the resulting file set. prior may be
// nil for a from-scratch build.
func (b *Builder) Build(files []model.FileInfo, prior *model.DeepIndex) (Result, error) {
	entries, rawImports, processed := b.buildEntries(files, prior)

	fileMap := make(map[string]model.FileEntry, len(entries))
	for _, e := range entries {
		fileMap[e.path] = e.entry
	}

	totalDocs, avgDocLength, docFreqs := corpusStats(fileMap)

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}

	fileImports := make([]importgraph.FileImports, 0, len(files))
	for _, f := range files {
		fileImports = append(fileImports, importgraph.FileImports{
			Path:       f.Path,
			Language:   f.Language,
			RawImports: rawImports[f.Path],
		})
	}

	graph := importgraph.BuildImportGraph(fileImports, paths)
	scores := pagerank.Normalized(graph)

	idx := model.DeepIndex{
		Version:        CurrentVersion,
		Files:          fileMap,
		AvgDocLength:   avgDocLength,
		TotalDocs:      totalDocs,
		DocFrequencies: docFreqs,
		PageRankScores: scores,
	}

	return Result{Index: idx, Processed: processed}, nil
}

type pathEntry struct {
	path  string
	entry model.FileEntry
}

// buildEntries processes every FileInfo in parallel, reusing prior entries
// by SHA-256 match, and returns each file's FileEntry plus its raw imports
// (reused from the prior entry when unchanged, extracted fresh otherwise —
// needed either way since PageRank is always recomputed over the current
// file set, per §4.4 step 3).
func (b *Builder) buildEntries(files []model.FileInfo, prior *model.DeepIndex) ([]pathEntry, map[string][]string, int) {
	var priorFiles map[string]model.FileEntry
	if prior != nil {
		priorFiles = prior.Files
	}

	results := make([]pathEntry, len(files))
	rawPerFile := make([][]string, len(files))
	processedFlags := make([]bool, len(files))

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				info := files[i]
				if prevEntry, ok := priorFiles[info.Path]; ok && prevEntry.SHA256 == info.SHA256 {
					results[i] = pathEntry{path: info.Path, entry: prevEntry}
					rawPerFile[i] = prevEntry.RawImports
					continue
				}

				entry, raw := b.buildFileEntry(info)
				results[i] = pathEntry{path: info.Path, entry: entry}
				rawPerFile[i] = raw
				processedFlags[i] = true
			}
		}()
	}
	wg.Wait()

	rawImports := make(map[string][]string, len(files))
	processed := 0
	for i, f := range files {
		rawImports[f.Path] = rawPerFile[i]
		if processedFlags[i] {
			processed++
		}
	}

	return results, rawImports, processed
}

// buildFileEntry reads and chunks+tokenizes one file. Read failures produce
// an empty FileEntry rather than aborting the build — a single unreadable
// file (permissions, race with a delete) should not fail the whole index.
func (b *Builder) buildFileEntry(info model.FileInfo) (model.FileEntry, []string) {
	content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(info.Path)))
	if err != nil {
		return model.FileEntry{SHA256: info.SHA256}, nil
	}

	termFreqs := make(map[string]model.TermFreqs)

	for _, tok := range tokenize.Path(info.Path) {
		tf := termFreqs[tok]
		tf.Filename++
		termFreqs[tok] = tf
	}

	bodyTokens := tokenize.Content(string(content))
	for _, tok := range bodyTokens {
		tf := termFreqs[tok]
		tf.Body++
		termFreqs[tok] = tf
	}

	chunks := chunk.Default(string(content), info.Language)
	for _, c := range chunks {
		if c.Kind != model.ChunkFunction && c.Kind != model.ChunkType && c.Kind != model.ChunkImpl {
			continue
		}
		for _, tok := range tokenize.Identifier(c.Name) {
			tf := termFreqs[tok]
			tf.Symbols++
			termFreqs[tok] = tf
		}
	}

	rawImports := importgraph.ExtractImports(string(content), info.Language)

	return model.FileEntry{
		SHA256:          info.SHA256,
		Chunks:          chunks,
		TermFrequencies: termFreqs,
		DocLength:       uint32(len(bodyTokens)),
		RawImports:      rawImports,
	}, rawImports
}

// corpusStats computes total_docs, avg_doc_length, and per-term document
// frequencies over the merged file map — always recomputed in full since
// it's cheap relative to parsing (§4.4).
func corpusStats(files map[string]model.FileEntry) (totalDocs uint32, avgDocLength float64, docFreqs map[string]uint32) {
	totalDocs = uint32(len(files))
	docFreqs = make(map[string]uint32)

	var totalLength uint64
	for _, entry := range files {
		totalLength += uint64(entry.DocLength)
		for term := range entry.TermFrequencies {
			docFreqs[term]++
		}
	}

	if totalDocs > 0 {
		avgDocLength = float64(totalLength) / float64(totalDocs)
	} else {
		avgDocLength = 1.0
	}

	return totalDocs, avgDocLength, docFreqs
}
