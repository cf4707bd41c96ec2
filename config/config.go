package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/usemanusai/uploadprep-mcp/filter"
)

// FileName is the optional per-project configuration file, read from the
// server root at startup.
const FileName = "uploadprep.yaml"

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// RuleConfig is one filter rule as written in YAML.
type RuleConfig struct {
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
}

// Config is the uploadprep.yaml schema. All fields are optional.
type Config struct {
	// Rules is appended after the built-in defaults, in order.
	Rules []RuleConfig `yaml:"rules"`
	// EnvFilePatterns overrides the environment-file naming convention.
	EnvFilePatterns []string `yaml:"env_file_patterns"`
	// BatchSize overrides the default files-per-batch for uploads.
	BatchSize int `yaml:"batch_size"`
}

// Load reads uploadprep.yaml from rootDir.
func Load(rootDir string) (*Config, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// FilterRules converts the YAML rules into engine rules. An unknown kind is
// a configuration error, not something to guess at.
func (c *Config) FilterRules() ([]filter.Rule, error) {
	rules := make([]filter.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		kind, err := filter.ParseKind(rc.Kind)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rc.Pattern, err)
		}
		rules = append(rules, filter.Rule{Pattern: rc.Pattern, Kind: kind})
	}
	return rules, nil
}
