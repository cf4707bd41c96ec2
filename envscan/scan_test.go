package envscan

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	return NewScanner(nil, nil)
}

func writeEnvFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_Scanner_ParsesVariables(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "API_KEY=secret123\n# a comment\n\nDEBUG=\"true\"\nEMPTY=\n")

	idx, err := newTestScanner(t).Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.FileCount() != 1 {
		t.Fatalf("FileCount = %d, want 1", idx.FileCount())
	}

	f := idx.Files()[0]
	if f.Path != ".env" {
		t.Errorf("Path = %q, want .env", f.Path)
	}
	wantNames := []string{"API_KEY", "DEBUG", "EMPTY"}
	gotNames := f.Names()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("Names = %v, want %v", gotNames, wantNames)
	}
	for i, name := range wantNames {
		if gotNames[i] != name {
			t.Errorf("Names[%d] = %q, want %q", i, gotNames[i], name)
		}
	}

	if v, _ := f.Get("API_KEY"); v.Value != "secret123" {
		t.Errorf("API_KEY = %q, want secret123", v.Value)
	}
	if v, _ := f.Get("DEBUG"); v.Value != "true" {
		t.Errorf("DEBUG = %q, want true (quotes stripped)", v.Value)
	}
}

func Test_Scanner_DuplicateLastWins(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "PORT=3000\nHOST=localhost\nPORT=8080\n")

	idx, err := newTestScanner(t).Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := idx.Files()[0]
	names := f.Names()
	if len(names) != 2 || names[0] != "PORT" || names[1] != "HOST" {
		t.Errorf("Names = %v, want [PORT HOST] (first position kept)", names)
	}
	if v, _ := f.Get("PORT"); v.Value != "8080" {
		t.Errorf("PORT = %q, want 8080 (later value wins)", v.Value)
	}
}

func Test_Scanner_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "justsometext\n=novalue\nVALID=ok\n")

	idx, err := newTestScanner(t).Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := idx.Files()[0]
	if f.Len() != 1 {
		t.Fatalf("Len = %d, want 1: %v", f.Len(), f.Names())
	}
	if v, _ := f.Get("VALID"); v.Value != "ok" {
		t.Errorf("VALID = %q, want ok", v.Value)
	}
}

func Test_Scanner_SingleQuotes(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "NAME='quoted value'\nMIXED=\"no'\n")

	idx, err := newTestScanner(t).Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := idx.Files()[0]
	if v, _ := f.Get("NAME"); v.Value != "quoted value" {
		t.Errorf("NAME = %q, want quoted value", v.Value)
	}
	if v, _ := f.Get("MIXED"); v.Value != "\"no'" {
		t.Errorf("MIXED = %q, want mismatched quotes kept verbatim", v.Value)
	}
}

func Test_Scanner_NamingConvention(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "A=1\n")
	writeEnvFile(t, dir, ".env.production", "B=2\n")
	writeEnvFile(t, dir, "backend/.env.local", "C=3\n")
	writeEnvFile(t, dir, ".envrc", "D=4\n")
	writeEnvFile(t, dir, ".environment", "E=5\n")
	writeEnvFile(t, dir, "config.env", "F=6\n")

	idx, err := newTestScanner(t).Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.FileCount() != 3 {
		paths := make([]string, 0, idx.FileCount())
		for _, f := range idx.Files() {
			paths = append(paths, f.Path)
		}
		t.Errorf("FileCount = %d, want 3; got %v", idx.FileCount(), paths)
	}
}

func Test_Scanner_MissingRoot(t *testing.T) {
	if _, err := newTestScanner(t).Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}
