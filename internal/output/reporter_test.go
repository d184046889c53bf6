package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/analyzer/dupfunc"
)

func TestReporter_WritesBothStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := NewReporterWriters(&stdout, &stderr)

	warnings := []dupfunc.Warning{
		{
			File:              "App.swift",
			Line:              12,
			Function:          "digitSum",
			SimilarityPercent: 100,
			ReferenceFile:     "Gen.swift",
			ReferenceLine:     3,
		},
		{
			File:              "Other.swift",
			Line:              7,
			Function:          "tallyUp",
			SimilarityPercent: 82,
			ReferenceFile:     "Gen.swift",
			ReferenceLine:     40,
		},
	}

	r.Report(warnings)

	want := "App.swift:12: warning: Duplicate function 'digitSum' detected (similarity: 100%). Similar logic exists in Gen.swift:3\n" +
		"Other.swift:7: warning: Duplicate function 'tallyUp' detected (similarity: 82%). Similar logic exists in Gen.swift:40\n"

	assert.Equal(t, want, stdout.String())
	assert.Equal(t, want, stderr.String())
}

func TestReporter_NoWarnings(t *testing.T) {
	var stdout, stderr bytes.Buffer
	NewReporterWriters(&stdout, &stderr).Report(nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestWriteMarker_CreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.done")

	require.NoError(t, WriteMarker(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteMarker_TruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.done")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteMarker(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestWriteMarker_BadPath(t *testing.T) {
	err := WriteMarker(filepath.Join(t.TempDir(), "no", "such", "dir", "m"))
	assert.Error(t, err)
}
