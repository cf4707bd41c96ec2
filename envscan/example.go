package envscan

import (
	"sort"
	"strings"
)

// Synthesize renders .env.example content from an index: one "NAME=" line per
// distinct scanned name in first-seen order across files, values blanked
// because the output is a template, then any additional names not already
// present as "NAME=value". Additional names are emitted in sorted order since
// callers supply them as a map.
func Synthesize(idx *Index, additional map[string]string) string {
	var builder strings.Builder
	seen := make(map[string]bool)

	if idx != nil {
		for _, file := range idx.Files() {
			for _, name := range file.Names() {
				if seen[name] {
					continue
				}
				seen[name] = true
				builder.WriteString(name)
				builder.WriteString("=\n")
			}
		}
	}

	extra := make([]string, 0, len(additional))
	for name := range additional {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		builder.WriteString(name)
		builder.WriteString("=")
		builder.WriteString(additional[name])
		builder.WriteString("\n")
	}

	return builder.String()
}
