package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// ignorePattern is a single compiled gitignore-style rule.
type ignorePattern struct {
	pattern  string
	negation bool // leading !
	dirOnly  bool // trailing /
	anchored bool // contains a non-trailing /
	baseDir  string
}

// ignoreMatcher implements the three ignore sources named in spec.md §4.1/§6:
// the repo's .gitignore (root and nested), the global gitignore, and
// .git/info/exclude. Later-loaded patterns override earlier ones on
// conflicting matches, and the last matching pattern for a path wins,
// matching conventional git semantics (negation, anchoring, dir-only).
type ignoreMatcher struct {
	root     string
	mu       sync.RWMutex
	patterns []ignorePattern
	cache    map[string]bool
	cacheSeq []string
}

const maxIgnoreCache = 4096

func newIgnoreMatcher(root string) *ignoreMatcher {
	return &ignoreMatcher{root: root, cache: make(map[string]bool)}
}

// load reads every ignore source under root. Missing files are not errors.
func (m *ignoreMatcher) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if global := globalGitignorePath(); global != "" {
		m.loadFileLocked(global, m.root)
	}

	excludePath := filepath.Join(m.root, ".git", "info", "exclude")
	m.loadFileLocked(excludePath, m.root)

	rootGitignore := filepath.Join(m.root, ".gitignore")
	m.loadFileLocked(rootGitignore, m.root)

	_ = filepath.Walk(m.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && info.Name() == ".git" {
			return filepath.SkipDir
		}
		if !info.IsDir() && info.Name() == ".gitignore" && p != rootGitignore {
			m.loadFileLocked(p, filepath.Dir(p))
		}
		return nil
	})

	m.patterns = append(m.patterns, ignorePattern{pattern: ".git", dirOnly: true, baseDir: m.root})
	return nil
}

func (m *ignoreMatcher) loadFileLocked(path, baseDir string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseIgnoreLine(scanner.Text(), baseDir); p != nil {
			m.patterns = append(m.patterns, *p)
		}
	}
}

func parseIgnoreLine(line, baseDir string) *ignorePattern {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &ignorePattern{baseDir: baseDir}

	if strings.HasPrefix(line, "!") {
		p.negation = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.Contains(line, "/") {
		p.anchored = true
	}
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	}

	p.pattern = line
	return p
}

// isIgnored reports whether relPath (forward-slash, relative to root)
// should be excluded from the scan. isDir indicates whether relPath names a
// directory, needed for dir-only pattern semantics.
func (m *ignoreMatcher) isIgnored(relPath string, isDir bool) bool {
	m.mu.RLock()
	if cached, ok := m.cache[relPath]; ok {
		m.mu.RUnlock()
		return cached
	}
	m.mu.RUnlock()

	m.mu.RLock()
	ignored := false
	for _, p := range m.patterns {
		if matchIgnorePattern(m.root, p, relPath, isDir) {
			ignored = !p.negation
		}
	}
	m.mu.RUnlock()

	m.mu.Lock()
	if len(m.cache) >= maxIgnoreCache && len(m.cacheSeq) > 0 {
		delete(m.cache, m.cacheSeq[0])
		m.cacheSeq = m.cacheSeq[1:]
	}
	m.cache[relPath] = ignored
	m.cacheSeq = append(m.cacheSeq, relPath)
	m.mu.Unlock()

	return ignored
}

func matchIgnorePattern(root string, p ignorePattern, relPath string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return false
	}

	patternPath := p.pattern
	if p.baseDir != root {
		if rel, err := filepath.Rel(root, p.baseDir); err == nil {
			patternPath = filepath.ToSlash(filepath.Join(rel, p.pattern))
		}
	}

	if p.anchored {
		return globMatch(patternPath, relPath) || globMatch(patternPath+"/**", relPath)
	}

	if globMatch("**/"+patternPath, relPath) || globMatch("**/"+patternPath+"/**", relPath) {
		return true
	}

	return globMatch(patternPath, filepath.Base(relPath))
}

func globMatch(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}

func globalGitignorePath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		if home, err := os.UserHomeDir(); err == nil {
			xdgConfig = filepath.Join(home, ".config")
		}
	}
	if xdgConfig != "" {
		p := filepath.Join(xdgConfig, "git", "ignore")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".gitignore_global")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
