// Package dupfunc detects duplicated function logic by comparing
// structural signatures extracted from parsed function bodies, so
// copies that were renamed or reformatted still match.
package dupfunc

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Ashakiran-cell/DuplicateDetector/internal/fileproc"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/parser"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/source"
)

// Analyzer runs the three-phase duplicate scan: build a reference set
// from template files, scan regular files against it, then scan each
// template file against its own earlier functions.
type Analyzer struct {
	config Config
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithThreshold sets the minimum similarity that produces a warning.
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.config.Threshold = threshold
	}
}

// WithConfig replaces the whole tuning surface.
func WithConfig(cfg Config) Option {
	return func(a *Analyzer) {
		a.config = cfg
	}
}

// New creates a new analyzer with default config.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{config: DefaultConfig()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the active tuning.
func (a *Analyzer) Config() Config {
	return a.config
}

// refKey deduplicates reference entries extracted more than once.
type refKey struct {
	file string
	line int
	name string
}

// referenceSet holds Phase-1 entries in catalog-insertion order so the
// reported reference match is deterministic: first catalogued wins.
type referenceSet struct {
	entries []FunctionRecord
	seen    map[refKey]struct{}
}

func newReferenceSet() *referenceSet {
	return &referenceSet{seen: make(map[refKey]struct{})}
}

func (r *referenceSet) add(rec FunctionRecord) {
	key := refKey{file: rec.File, line: rec.Line, name: rec.Name}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.entries = append(r.entries, rec)
}

// Analyze runs all three phases over the partitioned file lists and
// returns the ordered warnings. Files that cannot be read or parsed
// contribute zero functions; nothing in the pipeline fails the run.
func (a *Analyzer) Analyze(templateFiles, regularFiles []string, src source.ContentSource) *Analysis {
	return a.AnalyzeWithProgress(templateFiles, regularFiles, src, nil)
}

// AnalyzeWithProgress is Analyze with a per-file progress callback.
func (a *Analyzer) AnalyzeWithProgress(templateFiles, regularFiles []string, src source.ContentSource, onProgress fileproc.ProgressFunc) *Analysis {
	analysis := &Analysis{
		Warnings:  make([]Warning, 0),
		Threshold: a.config.Threshold,
		Summary: Summary{
			TemplateFiles: len(templateFiles),
			RegularFiles:  len(regularFiles),
		},
	}

	catalogFile := func(psr *parser.Parser, path string) ([]FunctionRecord, error) {
		content, err := src.Read(path)
		if err != nil {
			return nil, err
		}
		return BuildCatalog(psr, path, content), nil
	}

	// Catalogs are built in parallel per file; the pool wait below is
	// the barrier that completes Phase 1 before Phase 2 starts, and the
	// indexed results keep warning order aligned with input order.
	templateCatalogs := fileproc.MapFilesWithProgress(templateFiles, catalogFile, onProgress)
	regularCatalogs := fileproc.MapFilesWithProgress(regularFiles, catalogFile, onProgress)

	// Phase 1: reference set from every template-bucket function.
	refs := newReferenceSet()
	for _, catalog := range templateCatalogs {
		for _, rec := range catalog {
			refs.add(rec)
			analysis.Summary.FunctionsCatalogued++
		}
	}

	// Phase 2: every regular-bucket function against the reference set,
	// stopping at the first match that clears the threshold.
	for _, catalog := range regularCatalogs {
		for _, rec := range catalog {
			analysis.Summary.FunctionsCatalogued++
			if w, ok := a.firstMatch(rec, refs.entries); ok {
				analysis.Warnings = append(analysis.Warnings, w)
				analysis.Summary.CrossBucketWarnings++
			}
		}
	}

	// Phase 3: within each template file, compare each function only
	// against functions declared earlier in the same file.
	for _, catalog := range templateCatalogs {
		var earlier []FunctionRecord
		for _, rec := range catalog {
			if w, ok := a.firstMatch(rec, earlier); ok {
				analysis.Warnings = append(analysis.Warnings, w)
				analysis.Summary.IntraBucketWarnings++
			}
			earlier = append(earlier, rec)
		}
	}

	a.summarize(analysis)
	return analysis
}

// firstMatch compares rec against candidates in order and reports the
// first one scoring at or above the threshold. Reporting once per
// function, not every matching pair, is deliberate.
func (a *Analyzer) firstMatch(rec FunctionRecord, candidates []FunctionRecord) (Warning, bool) {
	for _, ref := range candidates {
		score := Similarity(rec.Signature, ref.Signature, a.config)
		if score >= a.config.Threshold {
			return Warning{
				File:              rec.File,
				Line:              rec.Line,
				Function:          rec.Name,
				SimilarityPercent: int(math.Round(score * 100)),
				ReferenceFile:     ref.File,
				ReferenceLine:     ref.Line,
			}, true
		}
	}
	return Warning{}, false
}

// summarize fills the similarity statistics over emitted warnings.
func (a *Analyzer) summarize(analysis *Analysis) {
	if len(analysis.Warnings) == 0 {
		return
	}

	sims := make([]float64, len(analysis.Warnings))
	for i, w := range analysis.Warnings {
		sims[i] = float64(w.SimilarityPercent) / 100
	}
	analysis.Summary.AvgSimilarity = stat.Mean(sims, nil)

	sort.Float64s(sims)
	analysis.Summary.P50Similarity = stat.Quantile(0.50, stat.Empirical, sims, nil)
	analysis.Summary.P95Similarity = stat.Quantile(0.95, stat.Empirical, sims, nil)
}
