package envscan

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFilePatterns is the recognized environment-file naming convention:
// the literal ".env" plus any qualified variant such as ".env.production".
var DefaultFilePatterns = []string{".env", ".env.*"}

// Variable is one NAME=VALUE pair parsed from an environment file.
type Variable struct {
	Name       string
	Value      string
	SourceFile string
}

// FileVars holds the variables of one file in first-insertion order.
// A duplicate NAME keeps its original position but takes the later value.
type FileVars struct {
	Path   string
	names  []string
	byName map[string]Variable
}

func newFileVars(path string) *FileVars {
	return &FileVars{
		Path:   path,
		byName: make(map[string]Variable),
	}
}

func (f *FileVars) set(v Variable) {
	if _, exists := f.byName[v.Name]; !exists {
		f.names = append(f.names, v.Name)
	}
	f.byName[v.Name] = v
}

// Names returns the variable names in insertion order.
func (f *FileVars) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Get returns the variable with the given name.
func (f *FileVars) Get(name string) (Variable, bool) {
	v, ok := f.byName[name]
	return v, ok
}

// Len returns the number of distinct variables in the file.
func (f *FileVars) Len() int {
	return len(f.names)
}

// Index maps scanned environment files to their variables, in scan order.
type Index struct {
	files []*FileVars
}

// Files returns the scanned files in scan order.
func (idx *Index) Files() []*FileVars {
	return idx.files
}

// FileCount returns the number of environment files found.
func (idx *Index) FileCount() int {
	return len(idx.files)
}

// Scanner discovers environment files under a root directory and parses
// their variables. Scanning is best-effort: unreadable files and malformed
// lines are skipped, never fatal.
type Scanner struct {
	patterns []string
	logger   *slog.Logger
}

// NewScanner creates a scanner with the given file name patterns.
// An empty pattern list keeps the defaults.
func NewScanner(patterns []string, logger *slog.Logger) *Scanner {
	if len(patterns) == 0 {
		patterns = DefaultFilePatterns
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		patterns: patterns,
		logger:   logger,
	}
}

// Scan walks root recursively and parses every file whose name matches the
// environment-file convention. Only a missing or unreadable root fails.
func (s *Scanner) Scan(root string) (*Index, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root directory: %w", err)
	}

	idx := &Index{}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !s.matchesConvention(d.Name()) {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		vars, readErr := s.parseFile(path, relPath)
		if readErr != nil {
			s.logger.Warn("skipping unreadable env file", "path", relPath, "error", readErr)
			return nil
		}

		idx.files = append(idx.files, vars)
		return nil
	})
	return idx, nil
}

// matchesConvention reports whether a file name looks like an environment file.
func (s *Scanner) matchesConvention(name string) bool {
	for _, pattern := range s.patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// parseFile reads one environment file line by line. The handle is released
// before returning, on every path.
func (s *Scanner) parseFile(path string, relPath string) (*FileVars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars := newFileVars(relPath)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if v, ok := parseLine(scanner.Text(), relPath); ok {
			vars.set(v)
		}
	}
	if err := scanner.Err(); err != nil {
		// Keep whatever parsed cleanly; a truncated read is not fatal.
		s.logger.Warn("partial read of env file", "path", relPath, "error", err)
	}
	return vars, nil
}

// parseLine parses one environment-file line. ok is false for blank lines,
// comments, lines without "=", and lines with an empty name.
func parseLine(line string, sourceFile string) (Variable, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Variable{}, false
	}

	name, value, found := strings.Cut(line, "=")
	if !found {
		return Variable{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Variable{}, false
	}

	value = unquote(strings.TrimSpace(value))
	return Variable{Name: name, Value: value, SourceFile: sourceFile}, true
}

// unquote strips exactly one layer of matching single or double quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
