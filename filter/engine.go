package filter

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gitignore "github.com/denormal/go-gitignore"
)

// Engine classifies file paths into upload include/exclude partitions using
// an ordered rule list. Resolution is last-match-wins: the most recently
// added matching rule decides, so broad default excludes can be layered with
// narrow include overrides without priority numbers. Paths no rule matches
// fall through to the .gitignore/.uploadignore layers and are otherwise
// included.
// Thread-safe: AddRule and Reload take the write lock, queries take the read lock.
type Engine struct {
	mu           sync.RWMutex
	rootDir      string
	rules        []Rule
	gitIgnore    gitignore.GitIgnore
	uploadIgnore gitignore.GitIgnore
}

// Options configures engine construction.
type Options struct {
	// RootDir anchors relative matching and ignore-file loading.
	RootDir string
	// BaseRules replaces the built-in defaults when non-nil.
	BaseRules []Rule
	// ExtraRules is appended after the base rules, in order.
	// Entries with invalid patterns are dropped.
	ExtraRules []Rule
}

// NewEngine builds an engine from the default (or supplied) rule set plus any
// extras, and loads the .gitignore/.uploadignore fallback layers from the root.
func NewEngine(options Options) *Engine {
	base := options.BaseRules
	if base == nil {
		base = DefaultRules()
	}

	rules := make([]Rule, 0, len(base)+len(options.ExtraRules))
	rules = append(rules, base...)
	for _, rule := range options.ExtraRules {
		if ValidPattern(rule.Pattern) {
			rules = append(rules, Rule{Pattern: strings.TrimSpace(rule.Pattern), Kind: rule.Kind})
		}
	}

	engine := &Engine{
		rootDir: options.RootDir,
		rules:   rules,
	}
	engine.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	engine.uploadIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".uploadignore"), options.RootDir)
	return engine
}

// ShouldExclude reports whether path is excluded from the upload set.
// path may be absolute or root-relative; root defaults to the engine root
// when empty. Classification is pure string matching: the file does not have
// to exist on disk.
func (e *Engine) ShouldExclude(path string, root string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	relPath := e.relativize(path, root)

	matched := false
	excluded := false
	for _, rule := range e.rules {
		if rule.Matches(relPath) {
			matched = true
			excluded = rule.Kind == KindExclude
		}
	}
	if matched {
		return excluded
	}

	// No explicit rule: consult the ignore-file layers.
	if ignoredBy(e.gitIgnore, relPath) || ignoredBy(e.uploadIgnore, relPath) {
		return true
	}
	return false
}

// AddRule appends a rule to the end of the list, giving it the highest
// precedence under last-match-wins. Returns false without mutating when the
// pattern is empty or not a valid glob. Duplicate patterns are permitted.
func (e *Engine) AddRule(pattern string, kind Kind) bool {
	pattern = strings.TrimSpace(pattern)
	if !ValidPattern(pattern) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, Rule{Pattern: pattern, Kind: kind})
	return true
}

// Rules returns a snapshot of the rule list in insertion order.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules := make([]Rule, len(e.rules))
	copy(rules, e.rules)
	return rules
}

// Reload re-reads the .gitignore and .uploadignore layers from disk.
// Used when the watcher detects changes to these files.
func (e *Engine) Reload() {
	newGitIgnore := loadIgnoreFile(filepath.Join(e.rootDir, ".gitignore"), e.rootDir)
	newUploadIgnore := loadIgnoreFile(filepath.Join(e.rootDir, ".uploadignore"), e.rootDir)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.gitIgnore = newGitIgnore
	e.uploadIgnore = newUploadIgnore
}

// DryRunReport is the outcome of classifying every file under a root.
type DryRunReport struct {
	Included             []string
	Excluded             []string
	TotalCount           int
	ExcludedCount        int
	ExclusionRatePercent float64
}

// DryRun walks every regular file under root and classifies it with the
// current rules, without touching any file content. Only a missing or
// unreadable root fails; per-entry errors are skipped.
func (e *Engine) DryRun(root string) (*DryRunReport, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root directory: %w", err)
	}

	report := &DryRunReport{}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		report.TotalCount++
		if e.ShouldExclude(path, root) {
			report.ExcludedCount++
			report.Excluded = append(report.Excluded, relPath)
		} else {
			report.Included = append(report.Included, relPath)
		}
		return nil
	})

	// Guard the division: an empty tree reports a 0% rate, not an error.
	if report.TotalCount > 0 {
		rate := float64(report.ExcludedCount) / float64(report.TotalCount) * 100
		report.ExclusionRatePercent = math.Round(rate*10) / 10
	}
	return report, nil
}

// relativize converts path into a forward-slash, root-relative form. Rel
// works for relative inputs too, so it is attempted unconditionally: a
// WalkDir path under a relative root still carries the root prefix, and the
// root's own directory names must never reach the rules. The original string
// is kept only when Rel fails (mixed absolute/relative inputs) or escapes
// the root.
func (e *Engine) relativize(path string, root string) string {
	if root == "" {
		root = e.rootDir
	}

	candidate := path
	if rel, err := filepath.Rel(root, path); err == nil && !escapesRoot(rel) {
		candidate = rel
	}
	candidate = filepath.ToSlash(candidate)
	return strings.TrimPrefix(candidate, "./")
}

// escapesRoot reports whether a Rel result points outside the root.
func escapesRoot(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ignoredBy checks a path against one ignore-file layer using Relative(),
// which does not require the file to exist on disk.
func ignoredBy(ignoreFile gitignore.GitIgnore, relPath string) bool {
	if ignoreFile == nil {
		return false
	}
	match := ignoreFile.Relative(relPath, false)
	return match != nil && match.Ignore()
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// Uses the io.Reader form so the file handle is closed promptly.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
