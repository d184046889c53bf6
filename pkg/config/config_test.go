package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0.70, cfg.Detection.Threshold)
	assert.Equal(t, 0.30, cfg.Detection.OperatorWeight)
	assert.Equal(t, 0.25, cfg.Detection.CallWeight)
	assert.Equal(t, 0.20, cfg.Detection.FlowWeight)
	assert.Equal(t, 0.25, cfg.Detection.StructureWeight)
	assert.Equal(t, float64(10), cfg.Detection.StructuralDivisor)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupdetect.toml")
	content := `[detection]
threshold = 0.85

[output]
format = "json"
summary = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.85, cfg.Detection.Threshold)
	// unset keys keep their defaults
	assert.Equal(t, 0.30, cfg.Detection.OperatorWeight)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Summary)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dupdetect.yaml")
	content := `detection:
  threshold: 0.6
exclude:
  dirs:
    - Vendor
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Detection.Threshold)
	assert.Contains(t, cfg.Exclude.Dirs, "Vendor")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"Sources/App.swift", false},
		{"Pods/Alamofire/Session.swift", true},
		{filepath.Join("Sources", ".build", "gen", "X.swift"), true},
		{"Sources/AppTests.swift", true},
		{"Sources/Model.generated.swift", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ShouldExclude(tt.path), "path %s", tt.path)
	}
}
