package upload

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/usemanusai/uploadprep-mcp/envscan"
	"github.com/usemanusai/uploadprep-mcp/filter"
)

func writeManifestFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_BuildManifest_BatchesAndSkips(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go", "e.go", "f.go", "g.go"} {
		writeManifestFile(t, dir, name, "package x\n")
	}
	writeManifestFile(t, dir, ".env", "SECRET=x\n")
	writeManifestFile(t, dir, "node_modules/lib/index.js", "x\n")

	engine := filter.NewEngine(filter.Options{RootDir: dir})
	scanner := envscan.NewScanner(nil, nil)

	manifest, err := BuildManifest(dir, engine, scanner, 3, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(manifest.Files) != 7 {
		t.Errorf("Files = %d, want 7", len(manifest.Files))
	}
	if manifest.SkippedCount != 2 {
		t.Errorf("SkippedCount = %d, want 2", manifest.SkippedCount)
	}
	if len(manifest.Batches) != 3 {
		t.Fatalf("Batches = %d, want 3", len(manifest.Batches))
	}
	if len(manifest.Batches[0]) != 3 || len(manifest.Batches[1]) != 3 || len(manifest.Batches[2]) != 1 {
		t.Errorf("batch sizes = %d/%d/%d, want 3/3/1",
			len(manifest.Batches[0]), len(manifest.Batches[1]), len(manifest.Batches[2]))
	}
	if manifest.EnvExample != "" {
		t.Errorf("EnvExample should be empty when not requested, got %q", manifest.EnvExample)
	}
}

func Test_BuildManifest_WithEnvExample(t *testing.T) {
	dir := t.TempDir()
	writeManifestFile(t, dir, "main.go", "package main\n")
	writeManifestFile(t, dir, ".env", "API_KEY=secret123\nDEBUG=true\n")

	engine := filter.NewEngine(filter.Options{RootDir: dir})
	scanner := envscan.NewScanner(nil, nil)

	manifest, err := BuildManifest(dir, engine, scanner, 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if manifest.EnvExample != "API_KEY=\nDEBUG=\n" {
		t.Errorf("EnvExample = %q, want blanked names", manifest.EnvExample)
	}
	if strings.Contains(manifest.EnvExample, "secret123") {
		t.Error("EnvExample must never carry values")
	}
	// The .env file itself stays out of the upload set even though it feeds
	// the example generation.
	for _, f := range manifest.Files {
		if f.RelativePath == ".env" {
			t.Error(".env must not appear in the upload set")
		}
	}
}

func Test_BuildManifest_MissingRoot(t *testing.T) {
	engine := filter.NewEngine(filter.Options{RootDir: t.TempDir()})
	scanner := envscan.NewScanner(nil, nil)

	if _, err := BuildManifest(filepath.Join(t.TempDir(), "nope"), engine, scanner, 5, false); err == nil {
		t.Error("expected error for missing root")
	}
}

func Test_NopUploader(t *testing.T) {
	uploader := &NopUploader{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	manifest := &Manifest{
		Root:    "/project",
		Files:   []File{{RelativePath: "a.go"}, {RelativePath: "b.go"}},
		Batches: [][]File{{{RelativePath: "a.go"}, {RelativePath: "b.go"}}},
	}

	result, err := uploader.Upload(context.Background(), manifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Files != 2 || result.Batches != 1 {
		t.Errorf("result = %d files / %d batches, want 2/1", result.Files, result.Batches)
	}
	if result.Message == "" {
		t.Error("expected a message explaining no transport is configured")
	}
}
