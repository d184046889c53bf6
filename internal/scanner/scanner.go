// Package scanner discovers Swift source files and partitions them into
// template and regular buckets.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/config"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/parser"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/source"
)

// templateMarker flags a file as template-derived. Generated template
// files carry type extensions, hand-written sources rarely do at the
// point this tool runs.
const templateMarker = "extension "

// Buckets holds the two classes of scanned files. Order within each
// bucket follows discovery order.
type Buckets struct {
	Templates []string
	Regular   []string
}

// Scanner discovers source files honoring config excludes and gitignore.
type Scanner struct {
	cfg     *config.Config
	matcher gitignore.Matcher
}

// New creates a Scanner rooted at dir. Gitignore patterns are loaded
// from the directory tree when the config enables them.
func New(dir string, cfg *config.Config) *Scanner {
	s := &Scanner{cfg: cfg}

	if cfg.Exclude.Gitignore {
		fs := osfs.New(dir)
		if patterns, err := gitignore.ReadPatterns(fs, nil); err == nil && len(patterns) > 0 {
			s.matcher = gitignore.NewMatcher(patterns)
		}
	}

	return s
}

// ScanDir walks dir and returns all Swift files not excluded by config
// or gitignore, in lexical walk order.
func (s *Scanner) ScanDir(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		// unreadable entries are skipped, they never fail the scan
		if err != nil {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}

		if info.IsDir() {
			if path == dir {
				return nil
			}
			if s.cfg.ShouldExclude(rel + string(filepath.Separator)) {
				return filepath.SkipDir
			}
			for _, d := range s.cfg.Exclude.Dirs {
				if info.Name() == d {
					return filepath.SkipDir
				}
			}
			if s.ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		// symlinks are not followed
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}

		if !parser.IsSourceFile(path) {
			return nil
		}
		if s.cfg.ShouldExclude(rel) || s.ignored(rel, false) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	return files, nil
}

func (s *Scanner) ignored(rel string, isDir bool) bool {
	if s.matcher == nil {
		return false
	}
	return s.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

// ExpandPaths resolves a mix of file and directory arguments into a
// flat list of Swift files. Files are taken as-is when they carry the
// source extension; directories are scanned recursively. Argument
// order is preserved. A path that cannot be stat-ed is passed through
// as a file argument: downstream it lands in the regular bucket and
// contributes zero functions, so a bad path never fails the run.
func ExpandPaths(paths []string, cfg *config.Config) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if parser.IsSourceFile(p) {
				files = append(files, p)
			}
			continue
		}

		if info.IsDir() {
			found, err := New(p, cfg).ScanDir(p)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}

		if parser.IsSourceFile(p) {
			files = append(files, p)
		}
	}

	return files, nil
}

// Partition splits files into template and regular buckets by content
// inspection. A file whose text contains an extension declaration is
// treated as template output. Unreadable files land in the regular
// bucket so they still get a parse attempt later.
func Partition(files []string, src source.ContentSource) Buckets {
	var b Buckets

	for _, f := range files {
		content, err := src.Read(f)
		if err == nil && strings.Contains(string(content), templateMarker) {
			b.Templates = append(b.Templates, f)
			continue
		}
		b.Regular = append(b.Regular, f)
	}

	return b
}
