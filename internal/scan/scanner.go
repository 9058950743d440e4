// Package scan walks a repository tree and produces the FileInfo/Bundle
// metadata that every downstream component (Chunker, IndexBuilder, scorers)
// consumes (spec.md §4.1).
package scan

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Demwunz/topo/internal/model"
)

// hardBlockedDirs are excluded regardless of .gitignore contents, mirroring
// the original scanner's always-skip list.
var hardBlockedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".topo":        true,
	".atlas":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	".env":         true,
	".svn":         true,
	".hg":          true,
}

// ScanError wraps a filesystem failure encountered while walking root.
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string { return fmt.Sprintf("scan %s: %v", e.Path, e.Err) }
func (e *ScanError) Unwrap() error { return e.Err }

// Scanner walks a directory tree, honoring .gitignore/.git/info/exclude/the
// global gitignore plus the always-blocked directories above, and an
// optional build whitelist of additional globs to exclude.
type Scanner struct {
	root      string
	whitelist []glob.Glob
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExcludeGlobs compiles additional gitignore-style globs (evaluated
// against the repo-relative, forward-slash path) to exclude from the scan,
// on top of .gitignore and the hard-blocked directories.
func WithExcludeGlobs(patterns ...string) Option {
	return func(s *Scanner) {
		for _, p := range patterns {
			if g, err := glob.Compile(p, '/'); err == nil {
				s.whitelist = append(s.whitelist, g)
			}
		}
	}
}

func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks root and returns a Bundle sorted by path with a computed
// fingerprint, per spec.md §4.1.
func (s *Scanner) Scan() (model.Bundle, error) {
	ignore := newIgnoreMatcher(s.root)
	if err := ignore.load(); err != nil {
		return model.Bundle{}, &ScanError{Path: s.root, Err: err}
	}

	var files []model.FileInfo

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == s.root {
				return err
			}
			return nil
		}
		if p == s.root {
			if !d.IsDir() {
				return fmt.Errorf("not a directory")
			}
			return nil
		}

		rel, relErr := filepath.Rel(s.root, p)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			if hardBlockedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if ignore.isIgnored(relSlash, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignore.isIgnored(relSlash, false) {
			return nil
		}
		if s.excludedByWhitelist(relSlash) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil || !info.Mode().IsRegular() {
			return nil
		}

		sum, hashErr := hashFile(p)
		if hashErr != nil {
			return nil
		}

		files = append(files, model.FileInfo{
			Path:     relSlash,
			Size:     uint64(info.Size()),
			Language: model.LanguageFromPath(relSlash),
			Role:     model.RoleFromPath(relSlash),
			SHA256:   sum,
		})
		return nil
	})
	if err != nil {
		return model.Bundle{}, &ScanError{Path: s.root, Err: err}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return model.Bundle{
		Fingerprint: fingerprint(files),
		Root:        s.root,
		Files:       files,
	}, nil
}

func (s *Scanner) excludedByWhitelist(relPath string) bool {
	for _, g := range s.whitelist {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

func hashFile(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [32]byte{}, err
	}

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// fingerprint hashes "path\thex(sha256)\n" for every file, in sorted order
// (spec.md §4.1), so two scans of an unchanged tree always agree.
func fingerprint(files []model.FileInfo) string {
	h := sha256.New()
	for _, f := range files {
		var b strings.Builder
		b.WriteString(f.Path)
		b.WriteByte('\t')
		fmt.Fprintf(&b, "%x", f.SHA256)
		b.WriteByte('\n')
		io.WriteString(h, b.String())
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
