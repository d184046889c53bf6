// Package config loads dupdetect configuration from TOML, YAML, or JSON.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for dupdetect.
type Config struct {
	// Detection tuning: threshold, sub-score weights, saturation divisor
	Detection DetectionConfig `koanf:"detection" toml:"detection"`

	// File exclusion patterns applied when scanning directories
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// DetectionConfig is the tuning surface of the similarity engine.
type DetectionConfig struct {
	Threshold         float64 `koanf:"threshold" toml:"threshold"`
	OperatorWeight    float64 `koanf:"operator_weight" toml:"operator_weight"`
	CallWeight        float64 `koanf:"call_weight" toml:"call_weight"`
	FlowWeight        float64 `koanf:"flow_weight" toml:"flow_weight"`
	StructureWeight   float64 `koanf:"structure_weight" toml:"structure_weight"`
	StructuralDivisor float64 `koanf:"structural_divisor" toml:"structural_divisor"`
}

// ExcludeConfig defines file exclusion patterns for directory scans.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns" toml:"patterns"`
	Dirs      []string `koanf:"dirs" toml:"dirs"`
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Summary bool   `koanf:"summary" toml:"summary"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			Threshold:         0.70,
			OperatorWeight:    0.30,
			CallWeight:        0.25,
			FlowWeight:        0.20,
			StructureWeight:   0.25,
			StructuralDivisor: 10,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*Tests.swift",
				"*.generated.swift",
			},
			Dirs: []string{
				".git",
				".build",
				"Pods",
				"Carthage",
				"DerivedData",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Summary: false,
		},
	}
}

// Load loads configuration from a file, picking the parser by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"dupdetect.toml",
		"dupdetect.yaml",
		"dupdetect.yml",
		"dupdetect.json",
		".dupdetect.toml",
		".dupdetect.yaml",
		".dupdetect.yml",
		".dupdetect.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path matches the exclusion rules.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
