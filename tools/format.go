package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/usemanusai/uploadprep-mcp/envscan"
	"github.com/usemanusai/uploadprep-mcp/filter"
	"github.com/usemanusai/uploadprep-mcp/upload"
)

// listLimit caps how many entries a partition listing shows before
// collapsing the remainder into a count.
const listLimit = 20

// resolveDir maps a tool's localDir argument onto an absolute directory.
// Empty or "." means the server root; relative paths resolve under it.
func resolveDir(localDir, rootDir string) string {
	localDir = strings.TrimSpace(localDir)
	if localDir == "" || localDir == "." {
		return rootDir
	}
	if filepath.IsAbs(localDir) {
		return localDir
	}
	return filepath.Join(rootDir, localDir)
}

// FormatRules renders the active rule list in evaluation order.
func FormatRules(rules []filter.Rule) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Active filter rules (%d, evaluated top to bottom, last match wins):\n", len(rules)))
	for i, r := range rules {
		sb.WriteString(fmt.Sprintf("%3d. [%s] %s\n", i+1, r.Kind, r.Pattern))
	}
	return sb.String()
}

// FormatDryRun renders a classification report with both partitions.
func FormatDryRun(report *filter.DryRunReport) string {
	var sb strings.Builder
	sb.WriteString("Filter dry run\n")
	sb.WriteString(fmt.Sprintf("Total files: %d\n", report.TotalCount))
	sb.WriteString(fmt.Sprintf("Excluded: %d (%.1f%%)\n", report.ExcludedCount, report.ExclusionRatePercent))
	sb.WriteString(fmt.Sprintf("Included: %d\n", report.TotalCount-report.ExcludedCount))

	sb.WriteString("\nExcluded files:\n")
	writeFileList(&sb, report.Excluded)
	sb.WriteString("\nIncluded files:\n")
	writeFileList(&sb, report.Included)
	return sb.String()
}

func writeFileList(sb *strings.Builder, paths []string) {
	if len(paths) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	shown := min(len(paths), listLimit)
	for _, p := range paths[:shown] {
		sb.WriteString("  " + p + "\n")
	}
	if rest := len(paths) - shown; rest > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", rest))
	}
}

// FormatEnvScan renders discovered environment files and their variable
// names. Values never appear in the output.
func FormatEnvScan(idx *envscan.Index) string {
	files := idx.Files()
	if len(files) == 0 {
		return "No environment files found.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Environment files found: %d\n", len(files)))
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("\n%s (%d variables):\n", f.Path, f.Len()))
		for _, name := range f.Names() {
			sb.WriteString("  " + name + "\n")
		}
	}
	return sb.String()
}

// FormatEnvExample renders the synthesized .env.example content plus a
// summary of where it came from and whether it was written to disk.
func FormatEnvExample(idx *envscan.Index, content, outPath string) string {
	varCount := 0
	if content != "" {
		varCount = strings.Count(content, "\n")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated .env.example: %d variable(s) from %d environment file(s).\n",
		varCount, idx.FileCount()))
	if outPath != "" {
		sb.WriteString(fmt.Sprintf("Written to: %s\n", outPath))
	}
	sb.WriteString("\n")
	if content == "" {
		sb.WriteString("(no variables found)\n")
	} else {
		sb.WriteString(content)
	}
	return sb.String()
}

// FormatUploadResult renders the outcome of an upload preparation.
func FormatUploadResult(m *upload.Manifest, result upload.Result) string {
	var sb strings.Builder
	sb.WriteString("Upload prepared\n")
	sb.WriteString(fmt.Sprintf("Root: %s\n", m.Root))
	sb.WriteString(fmt.Sprintf("Files queued: %d in %d batch(es)\n", result.Files, result.Batches))
	sb.WriteString(fmt.Sprintf("Files skipped by filters: %d\n", m.SkippedCount))
	if m.EnvExample != "" {
		sb.WriteString("\n.env.example content:\n")
		sb.WriteString(m.EnvExample)
	}
	if result.Message != "" {
		sb.WriteString("\n" + result.Message + "\n")
	}
	return sb.String()
}
