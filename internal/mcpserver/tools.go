package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/Ashakiran-cell/DuplicateDetector/internal/scanner"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/analyzer/dupfunc"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/config"
	"github.com/Ashakiran-cell/DuplicateDetector/pkg/source"
)

// ScanInput is the input for the scan_duplicates tool.
type ScanInput struct {
	Paths     []string `json:"paths,omitempty" jsonschema:"Files or directories to scan. Defaults to current directory if empty."`
	Threshold float64  `json:"threshold,omitempty" jsonschema:"Similarity threshold (0.0-1.0). Default 0.70."`
}

func getPaths(input ScanInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func handleScanDuplicates(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, any, error) {
	cfg := config.LoadOrDefault()

	files, err := scanner.ExpandPaths(getPaths(input), cfg)
	if err != nil {
		return toolError(err.Error())
	}

	src := source.NewFilesystem()
	buckets := scanner.Partition(files, src)

	opts := []dupfunc.Option{}
	if input.Threshold > 0 {
		opts = append(opts, dupfunc.WithThreshold(input.Threshold))
	}

	analysis := dupfunc.New(opts...).Analyze(buckets.Templates, buckets.Regular, src)
	return toolResult(analysis)
}
