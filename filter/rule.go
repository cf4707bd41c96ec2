package filter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind is the disposition a rule applies to matching paths.
type Kind int

const (
	// KindExclude drops matching paths from the upload set.
	KindExclude Kind = iota
	// KindInclude retains matching paths, overriding earlier excludes.
	KindInclude
)

func (k Kind) String() string {
	if k == KindInclude {
		return "include"
	}
	return "exclude"
}

// ParseKind converts a wire-level filter type into a Kind.
// The empty string defaults to exclude.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "exclude":
		return KindExclude, nil
	case "include":
		return KindInclude, nil
	}
	return KindExclude, fmt.Errorf("unknown filter kind %q (must be exclude or include)", value)
}

// Rule pairs a glob-style pattern with its disposition.
// A pattern ending in "/" is a directory rule: single-segment names match
// any parent segment of the path at any depth; multi-segment names like
// "a/b/" match the path's ancestors anchored at the root.
type Rule struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Kind    Kind   `json:"kind" yaml:"kind"`
}

// ValidPattern reports whether pattern can back a rule.
func ValidPattern(pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || pattern == "/" {
		return false
	}
	return doublestar.ValidatePattern(strings.TrimSuffix(pattern, "/"))
}

// Matches reports whether the rule matches relPath.
// relPath must be root-relative with forward slashes.
func (r Rule) Matches(relPath string) bool {
	if relPath == "" {
		return false
	}

	if name, ok := strings.CutSuffix(r.Pattern, "/"); ok {
		if strings.Contains(name, "/") {
			return matchesParentPath(name, relPath)
		}
		return matchesParentSegment(name, relPath)
	}

	if matched, err := doublestar.Match(r.Pattern, relPath); err == nil && matched {
		return true
	}

	// Slash-less patterns like "*.log" also match by basename, so they apply
	// at any depth.
	if !strings.Contains(r.Pattern, "/") {
		matched, err := doublestar.Match(r.Pattern, pathBase(relPath))
		return err == nil && matched
	}

	return false
}

// matchesParentSegment matches a directory rule against every non-final path
// segment. The final segment is the file itself and never counts: a file
// literally named "node_modules" is not excluded by "node_modules/".
func matchesParentSegment(name string, relPath string) bool {
	segments := strings.Split(relPath, "/")
	for _, segment := range segments[:len(segments)-1] {
		if matched, err := doublestar.Match(name, segment); err == nil && matched {
			return true
		}
	}
	return false
}

// matchesParentPath matches a multi-segment directory rule like "a/b/"
// against every ancestor path of relPath, root-anchored.
func matchesParentPath(pattern string, relPath string) bool {
	segments := strings.Split(relPath, "/")
	for k := 1; k < len(segments); k++ {
		ancestor := strings.Join(segments[:k], "/")
		if matched, err := doublestar.Match(pattern, ancestor); err == nil && matched {
			return true
		}
	}
	return false
}

// pathBase returns the final path component using slash separators.
func pathBase(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}
