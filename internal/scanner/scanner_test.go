package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/config"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanDir_FindsOnlySwiftFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "App.swift", "func a() {}\n")
	writeFile(t, tmpDir, "nested/Deep.swift", "func b() {}\n")
	writeFile(t, tmpDir, "README.md", "# readme\n")
	writeFile(t, tmpDir, "build.sh", "true\n")

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(tmpDir, cfg).ScanDir(tmpDir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	for _, f := range files {
		assert.Equal(t, ".swift", filepath.Ext(f))
	}
}

func TestScanDir_ExcludedDirsAndPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "Keep.swift", "func a() {}\n")
	writeFile(t, tmpDir, "Pods/Vendor.swift", "func v() {}\n")
	writeFile(t, tmpDir, "AppTests.swift", "func t() {}\n")

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := New(tmpDir, cfg).ScanDir(tmpDir)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "Keep.swift", filepath.Base(files[0]))
}

func TestScanDir_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, ".gitignore", "Ignored.swift\n")
	writeFile(t, tmpDir, "Ignored.swift", "func a() {}\n")
	writeFile(t, tmpDir, "Kept.swift", "func b() {}\n")

	cfg := config.DefaultConfig()

	files, err := New(tmpDir, cfg).ScanDir(tmpDir)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "Kept.swift", filepath.Base(files[0]))
}

func TestExpandPaths_MixedFilesAndDirs(t *testing.T) {
	tmpDir := t.TempDir()
	direct := writeFile(t, tmpDir, "Direct.swift", "func a() {}\n")
	other := writeFile(t, tmpDir, "sub/Other.swift", "func b() {}\n")
	writeFile(t, tmpDir, "sub/notes.txt", "skip\n")

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	files, err := ExpandPaths([]string{direct, filepath.Join(tmpDir, "sub")}, cfg)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, direct, files[0])
	assert.Equal(t, other, files[1])
}

func TestExpandPaths_NonSourceFileIgnored(t *testing.T) {
	tmpDir := t.TempDir()
	txt := writeFile(t, tmpDir, "plain.txt", "nothing\n")

	files, err := ExpandPaths([]string{txt}, config.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExpandPaths_MissingSourceFilePassesThrough(t *testing.T) {
	tmpDir := t.TempDir()
	kept := writeFile(t, tmpDir, "Kept.swift", "func a() {}\n")
	missing := filepath.Join(tmpDir, "gone.swift")

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	// a bad path must not abort the run or drop the valid inputs; the
	// missing file is carried along and yields zero functions later
	files, err := ExpandPaths([]string{kept, missing}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{kept, missing}, files)

	b := Partition(files, source.NewFilesystem())
	assert.Contains(t, b.Regular, missing)
}

func TestExpandPaths_MissingNonSourcePathIgnored(t *testing.T) {
	files, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "absent")}, config.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestPartition(t *testing.T) {
	tmpDir := t.TempDir()
	tmpl := writeFile(t, tmpDir, "Gen.swift", "extension Int {\n    func a() {}\n}\n")
	reg := writeFile(t, tmpDir, "Hand.swift", "func b() {}\n")
	missing := filepath.Join(tmpDir, "gone.swift")

	b := Partition([]string{tmpl, reg, missing}, source.NewFilesystem())

	assert.Equal(t, []string{tmpl}, b.Templates)
	// unreadable files fall into the regular bucket
	assert.Equal(t, []string{reg, missing}, b.Regular)
}

func TestPartition_MarkerAnywhereInContent(t *testing.T) {
	tmpDir := t.TempDir()
	f := writeFile(t, tmpDir, "Mixed.swift", "func a() {}\n\nextension String {}\n")

	b := Partition([]string{f}, source.NewFilesystem())

	assert.Len(t, b.Templates, 1)
	assert.Empty(t, b.Regular)
}
