package output

import (
	"fmt"
	"io"
	"os"

	"github.com/Ashakiran-cell/DuplicateDetector/pkg/analyzer/dupfunc"
)

// Reporter emits duplicate warnings to two streams at once so the
// lines reach both interactive users and log-capturing build systems.
type Reporter struct {
	out io.Writer
	err io.Writer
}

// NewReporter creates a reporter over stdout and stderr.
func NewReporter() *Reporter {
	return &Reporter{out: os.Stdout, err: os.Stderr}
}

// NewReporterWriters creates a reporter over the given writers.
func NewReporterWriters(out, err io.Writer) *Reporter {
	return &Reporter{out: out, err: err}
}

// Report writes each warning line to both streams in order.
func (r *Reporter) Report(warnings []dupfunc.Warning) {
	for _, w := range warnings {
		line := w.String()
		fmt.Fprintln(r.out, line)
		fmt.Fprintln(r.err, line)
	}
}

// WriteMarker creates (or truncates) the completion marker file. The
// marker signals that the scan ran to completion regardless of how
// many warnings were produced.
func WriteMarker(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing completion marker %s: %w", path, err)
	}
	return f.Close()
}
