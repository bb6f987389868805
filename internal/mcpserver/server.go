// Package mcpserver exposes the recommendation pipeline as an MCP tool.
package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shpitdev/air-assist/internal/recommend"
	"github.com/shpitdev/air-assist/internal/version"
)

// Recommender is the part of recommend.Pipeline the tool needs.
type Recommender interface {
	Run(ctx context.Context, answers recommend.Answers) (recommend.Set, error)
}

// Server is the MCP server for airassist.
type Server struct {
	rec    Recommender
	server *mcp.Server
}

// New creates an MCP server with the recommend_trip tool registered.
func New(rec Recommender) (*Server, error) {
	if rec == nil {
		return nil, errors.New("mcpserver: recommender is required")
	}
	s := &Server{
		rec: rec,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "airassist",
			Version: version.Current,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
