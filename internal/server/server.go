// Package server exposes the parser as Model Context Protocol tools.
package server

import (
	"fmt"
	"log/slog"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/a11y-snapshot/internal/l10n"
	"github.com/mj1618/a11y-snapshot/internal/logging"
	"github.com/mj1618/a11y-snapshot/internal/parser"
	"github.com/mj1618/a11y-snapshot/internal/platform"
	"github.com/mj1618/a11y-snapshot/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the parser, the document readers and
// the result cache.
type Server struct {
	parser   *parser.Parser
	provider *platform.Provider
	bundle   *l10n.Bundle
	cache    *ResultCache
	log      *slog.Logger
	mcp      *mcpserver.MCPServer
}

// New creates a server with the parse, hierarchy, describe and locales
// tools registered.
func New(cfg Config, p *parser.Parser, provider *platform.Provider) *Server {
	s := &Server{
		parser:   p,
		provider: provider,
		bundle:   l10n.Default(),
		cache:    NewResultCache(cfg.CacheTTL),
		log:      logging.New("server"),
	}
	s.mcp = mcpserver.NewMCPServer("a11y-snapshot", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	s.log.Info("serving", "transport", cfg.Transport, "port", cfg.Port, "cache_ttl", cfg.CacheTTL)
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}
