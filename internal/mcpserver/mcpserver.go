// Package mcpserver exposes duplicate detection as an MCP tool over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the dupdetect tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with the scan tool registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "dupdetect",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_duplicates",
		Description: describeScan(),
	}, handleScanDuplicates)
}

func describeScan() string {
	return "Detect structurally duplicated Swift functions. Template-derived " +
		"files (those containing type extensions) form a reference set; every " +
		"other function is scored against it on shared operators, call targets, " +
		"control-flow keywords, and structural counts. Returns warnings with " +
		"similarity percentages and the location of the matching reference."
}
