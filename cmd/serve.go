package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the parser as tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes parse, hierarchy,
describe and locales as tools. Agents pass a view tree document inline or by
path and get the traversal back without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  a11y-snapshot serve
  a11y-snapshot serve --transport streamable-http --port 8080
  a11y-snapshot serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 30000, "Parse result cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	p, err := newParser(cmd)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
	}
	return server.New(cfg, p, provider).Serve(cfg)
}
