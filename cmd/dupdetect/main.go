package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "dupdetect",
		Usage:   "Structural duplicate function detector for Swift",
		Version: version,
		Description: `Dupdetect flags functions whose structure closely mirrors a function
in template-derived sources. Files containing type extensions form the
reference set; every other function is compared against it on shared
operators, call targets, control-flow keywords, and structural counts.

Warnings are advisory and never fail the build.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"DUPDETECT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write structured output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show progress while scanning",
			},
			// scan flags are valid at the top level too, since a bare
			// `dupdetect path...` runs a scan
		}, scanFlags()...),
		Commands: []*cli.Command{
			scanCmd(),
			initCmd(),
			mcpCmd(),
		},
		// bare `dupdetect path...` behaves like `dupdetect scan path...`
		Action: runScan,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
