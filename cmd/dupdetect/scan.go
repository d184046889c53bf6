package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Ashakiran-cell/DuplicateDetector/internal/output"
	"github.com/Ashakiran-cell/DuplicateDetector/internal/progress"
	"github.com/Ashakiran-cell/DuplicateDetector/internal/scanner"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/analyzer/dupfunc"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/config"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/source"
)

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Similarity threshold (0.0-1.0), overrides config",
		},
		&cli.StringFlag{
			Name:  "marker",
			Usage: "Write an empty completion marker file at this path after the scan",
		},
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "Print aggregate scan statistics",
		},
	}
}

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan files or directories for duplicated functions",
		ArgsUsage: "[path...]",
		Flags:     scanFlags(),
		Action:    runScan,
	}
}

// getPaths returns the positional args. An empty list stays empty: a
// scan with no inputs produces no output, only the completion marker.
func getPaths(c *cli.Context) []string {
	return c.Args().Slice()
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func runScan(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := scanner.ExpandPaths(getPaths(c), cfg)
	if err != nil {
		return err
	}

	detCfg := dupfunc.Config{
		Threshold:         cfg.Detection.Threshold,
		OperatorWeight:    cfg.Detection.OperatorWeight,
		CallWeight:        cfg.Detection.CallWeight,
		FlowWeight:        cfg.Detection.FlowWeight,
		StructureWeight:   cfg.Detection.StructureWeight,
		StructuralDivisor: cfg.Detection.StructuralDivisor,
	}
	if c.IsSet("threshold") {
		detCfg.Threshold = c.Float64("threshold")
	}

	src := source.NewFilesystem()
	buckets := scanner.Partition(files, src)

	analyzer := dupfunc.New(dupfunc.WithConfig(detCfg))

	var analysis *dupfunc.Analysis
	if c.Bool("verbose") && len(files) > 0 {
		tracker := progress.NewTracker("Scanning...", len(files))
		analysis = analyzer.AnalyzeWithProgress(buckets.Templates, buckets.Regular, src, tracker.Tick)
		tracker.FinishSuccess()
	} else {
		analysis = analyzer.Analyze(buckets.Templates, buckets.Regular, src)
	}

	if err := emitResults(c, cfg, analysis); err != nil {
		return err
	}

	// the marker must appear even when nothing was scanned
	if marker := c.String("marker"); marker != "" {
		if err := output.WriteMarker(marker); err != nil {
			return err
		}
	}

	return nil
}

func emitResults(c *cli.Context, cfg *config.Config, analysis *dupfunc.Analysis) error {
	format := output.ParseFormat(cfg.Output.Format)
	if c.IsSet("format") {
		format = output.ParseFormat(c.String("format"))
	}

	// warning lines always reach stderr; with the default text format
	// they go to stdout too so both CI logs and pipes see them
	if format == output.FormatText {
		output.NewReporter().Report(analysis.Warnings)
	} else {
		reporter := output.NewReporterWriters(nopWriter{}, os.Stderr)
		reporter.Report(analysis.Warnings)

		formatter, err := output.NewFormatter(format, c.String("output"), cfg.Output.Color)
		if err != nil {
			return err
		}
		defer formatter.Close()
		if err := formatter.Output(analysis); err != nil {
			return err
		}
	}

	if c.Bool("summary") || cfg.Output.Summary {
		printSummary(analysis)
	}

	return nil
}

func printSummary(analysis *dupfunc.Analysis) {
	s := analysis.Summary
	table := output.NewTable(
		"Scan Summary",
		[]string{"Metric", "Value"},
		[][]string{
			{"Template files", fmt.Sprintf("%d", s.TemplateFiles)},
			{"Regular files", fmt.Sprintf("%d", s.RegularFiles)},
			{"Functions catalogued", fmt.Sprintf("%d", s.FunctionsCatalogued)},
			{"Cross-bucket warnings", fmt.Sprintf("%d", s.CrossBucketWarnings)},
			{"Intra-bucket warnings", fmt.Sprintf("%d", s.IntraBucketWarnings)},
			{"Avg similarity", fmt.Sprintf("%.0f%%", s.AvgSimilarity*100)},
			{"P50 similarity", fmt.Sprintf("%.0f%%", s.P50Similarity*100)},
			{"P95 similarity", fmt.Sprintf("%.0f%%", s.P95Similarity*100)},
		},
		nil,
		s,
	)
	if err := table.RenderText(os.Stderr, false); err != nil {
		return
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
