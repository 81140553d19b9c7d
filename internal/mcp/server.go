// ABOUTME: MCP server setup for the lift workout logger.
// ABOUTME: Wraps MCP server with storage Repository, workout engine and progress analyzer.
package mcp

import (
	"context"

	"github.com/harperreed/lift/internal/progress"
	"github.com/harperreed/lift/internal/session"
	"github.com/harperreed/lift/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer    *mcp.Server
	repo         storage.Repository
	manager      *session.Manager
	analyzer     *progress.Analyzer
	historyLimit int
	log          logrus.FieldLogger
}

// NewServer creates a new MCP server over the given storage. The manager must
// use the same storage; any unfinished workout should already be resumed.
func NewServer(repo storage.Repository, manager *session.Manager, historyLimit int) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lift",
			Version: Version,
		},
		nil,
	)

	if historyLimit <= 0 {
		historyLimit = progress.DefaultHistoryLimit
	}

	s := &Server{
		mcpServer:    mcpServer,
		repo:         repo,
		manager:      manager,
		analyzer:     progress.NewAnalyzer(repo),
		historyLimit: historyLimit,
		log:          logrus.WithField("component", "mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
