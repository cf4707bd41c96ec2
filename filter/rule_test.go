package filter

import "testing"

func Test_ParseKind(t *testing.T) {
	cases := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"exclude", KindExclude, false},
		{"include", KindInclude, false},
		{"", KindExclude, false},
		{"  Include  ", KindInclude, false},
		{"EXCLUDE", KindExclude, false},
		{"allow", KindExclude, true},
		{"blocklist", KindExclude, true},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q): expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func Test_Rule_DirectorySuffix(t *testing.T) {
	rule := Rule{Pattern: "node_modules/", Kind: KindExclude}

	cases := []struct {
		path string
		want bool
	}{
		{"node_modules/x.js", true},
		{"a/node_modules/b/c.js", true},
		{"my-node_modules-thing/x.js", false},
		{"node_modules", false}, // a file named node_modules is not a directory match
		{"src/main.go", false},
	}

	for _, tc := range cases {
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func Test_Rule_GlobPatterns(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.log", "debug.log", true},
		{"*.log", "logs/app.log", true}, // basename match applies at any depth
		{"*.log", "app.log.txt", false},
		{"src/*.go", "src/main.go", true},
		{"src/*.go", "src/sub/main.go", false}, // * does not cross "/"
		{"**/*.go", "src/sub/main.go", true},
		{".env", ".env", true},
		{".env.*", ".env.production", true},
		{".env.*", ".envrc", false},
		{"*.py[co]", "module.pyc", true},
	}

	for _, tc := range cases {
		rule := Rule{Pattern: tc.pattern, Kind: KindExclude}
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("Rule{%q}.Matches(%q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}

func Test_Rule_MultiSegmentDirectory(t *testing.T) {
	rule := Rule{Pattern: "a/b/", Kind: KindExclude}

	cases := []struct {
		path string
		want bool
	}{
		{"a/b/file.txt", true},
		{"a/b/c/file.txt", true},
		{"a/file.txt", false},
		{"x/a/b/file.txt", false}, // anchored at the root, unlike single-segment rules
		{"a/b", false},            // a file named b under a is not the directory
	}

	for _, tc := range cases {
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func Test_ValidPattern(t *testing.T) {
	valid := []string{"*.log", "node_modules/", ".env", "src/**/*.go", "  *.tmp  "}
	for _, p := range valid {
		if !ValidPattern(p) {
			t.Errorf("ValidPattern(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "   ", "/", "[unclosed"}
	for _, p := range invalid {
		if ValidPattern(p) {
			t.Errorf("ValidPattern(%q) = true, want false", p)
		}
	}
}
