package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/Ashakiran-cell/DuplicateDetector/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes duplicate
detection as a tool LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "dupdetect": {
        "command": "dupdetect",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - scan_duplicates    Structural duplicate function detection`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
