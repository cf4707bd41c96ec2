package upload

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/usemanusai/uploadprep-mcp/envscan"
	"github.com/usemanusai/uploadprep-mcp/filter"
)

// DefaultBatchSize is the number of files per upload batch when the caller
// does not specify one.
const DefaultBatchSize = 5

// File is one entry of the upload set.
type File struct {
	RelativePath string
	AbsolutePath string
	SizeBytes    int64
}

// Manifest is the unit of work handed to the Uploader collaborator: the
// filtered file set, already partitioned into batches, plus the optional
// synthesized .env.example payload.
type Manifest struct {
	Root         string
	Files        []File
	Batches      [][]File
	SkippedCount int
	// EnvExample is synthesized .env.example content, empty when not requested.
	EnvExample string
}

// BuildManifest walks root, keeps the files the engine includes, partitions
// them into batches of batchSize, and optionally synthesizes the .env.example
// payload from the scanner's findings.
func BuildManifest(
	root string,
	engine *filter.Engine,
	scanner *envscan.Scanner,
	batchSize int,
	withEnvExample bool,
) (*Manifest, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root directory: %w", err)
	}

	manifest := &Manifest{Root: root}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if engine.ShouldExclude(path, root) {
			manifest.SkippedCount++
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		manifest.Files = append(manifest.Files, File{
			RelativePath: filepath.ToSlash(relPath),
			AbsolutePath: path,
			SizeBytes:    info.Size(),
		})
		return nil
	})

	for start := 0; start < len(manifest.Files); start += batchSize {
		end := min(start+batchSize, len(manifest.Files))
		manifest.Batches = append(manifest.Batches, manifest.Files[start:end])
	}

	if withEnvExample {
		index, err := scanner.Scan(root)
		if err != nil {
			return nil, fmt.Errorf("scanning env files: %w", err)
		}
		manifest.EnvExample = envscan.Synthesize(index, nil)
	}

	return manifest, nil
}
