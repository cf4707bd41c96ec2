package filter

// DefaultRules returns the built-in rule set applied at engine construction.
// Order matters: the trailing include rules override the ".env.*" exclude so
// template env files stay uploadable.
func DefaultRules() []Rule {
	return []Rule{
		// Version control metadata
		{Pattern: ".git/", Kind: KindExclude},
		{Pattern: ".svn/", Kind: KindExclude},
		{Pattern: ".hg/", Kind: KindExclude},

		// Dependency and package caches
		{Pattern: "node_modules/", Kind: KindExclude},
		{Pattern: "bower_components/", Kind: KindExclude},
		{Pattern: "vendor/", Kind: KindExclude},
		{Pattern: ".npm/", Kind: KindExclude},
		{Pattern: ".yarn/", Kind: KindExclude},
		{Pattern: "__pycache__/", Kind: KindExclude},
		{Pattern: ".venv/", Kind: KindExclude},
		{Pattern: "venv/", Kind: KindExclude},

		// Build output
		{Pattern: "dist/", Kind: KindExclude},
		{Pattern: "build/", Kind: KindExclude},
		{Pattern: "out/", Kind: KindExclude},
		{Pattern: "target/", Kind: KindExclude},
		{Pattern: ".next/", Kind: KindExclude},
		{Pattern: ".nuxt/", Kind: KindExclude},

		// Coverage and tool caches
		{Pattern: "coverage/", Kind: KindExclude},
		{Pattern: ".nyc_output/", Kind: KindExclude},
		{Pattern: ".cache/", Kind: KindExclude},
		{Pattern: ".parcel-cache/", Kind: KindExclude},
		{Pattern: ".pytest_cache/", Kind: KindExclude},

		// IDE / editor metadata
		{Pattern: ".idea/", Kind: KindExclude},
		{Pattern: ".vscode/", Kind: KindExclude},
		{Pattern: "*.swp", Kind: KindExclude},
		{Pattern: "*.swo", Kind: KindExclude},
		{Pattern: "*~", Kind: KindExclude},

		// OS metadata
		{Pattern: ".DS_Store", Kind: KindExclude},
		{Pattern: "Thumbs.db", Kind: KindExclude},
		{Pattern: "desktop.ini", Kind: KindExclude},

		// Compiled artifacts
		{Pattern: "*.pyc", Kind: KindExclude},
		{Pattern: "*.pyo", Kind: KindExclude},
		{Pattern: "*.class", Kind: KindExclude},
		{Pattern: "*.o", Kind: KindExclude},
		{Pattern: "*.exe", Kind: KindExclude},
		{Pattern: "*.dll", Kind: KindExclude},
		{Pattern: "*.so", Kind: KindExclude},
		{Pattern: "*.dylib", Kind: KindExclude},

		// Logs
		{Pattern: "*.log", Kind: KindExclude},

		// Plausibly secret-bearing files
		{Pattern: "*.pem", Kind: KindExclude},
		{Pattern: ".env", Kind: KindExclude},
		{Pattern: ".env.*", Kind: KindExclude},

		// Template env files carry no secrets and are safe to upload
		{Pattern: ".env.example", Kind: KindInclude},
		{Pattern: ".env.sample", Kind: KindInclude},
	}
}
