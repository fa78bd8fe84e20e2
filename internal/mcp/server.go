package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

const (
	ServerName    = "LHEQ Statistics"
	ServerVersion = "1.0.0"
)

// NewStatsMCPServer exposes the standings tools over MCP.
func NewStatsMCPServer(handler *StandingsHandler, logger *logrus.Logger) *server.DefaultServer {
	s := server.NewDefaultServer(ServerName, ServerVersion)
	if s == nil {
		logger.Error("Failed to create MCP server instance")
		return nil
	}

	s.HandleListTools(func(ctx context.Context, cursor *string) (*mcp.ListToolsResult, error) {
		tools := handler.Tools()
		logger.WithField("tools_count", len(tools)).Info("Listing available tools")
		return &mcp.ListToolsResult{Tools: tools}, nil
	})

	s.HandleCallTool(func(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		return handler.Call(ctx, name, arguments)
	})

	logger.Info("All tools registered successfully")
	return s
}

// Call routes a tool call by name.
func (h *StandingsHandler) Call(ctx context.Context, name string, arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithFields(logrus.Fields{
		"tool": name,
		"args": arguments,
	}).Info("Tool called")

	switch name {
	case "get_division_standings":
		return h.HandleGetDivisionStandings(ctx, arguments)
	case "list_teams":
		return h.HandleListTeams(ctx, arguments)
	case "list_divisions":
		return h.HandleListDivisions(ctx, arguments)
	case "get_team":
		return h.HandleGetTeam(ctx, arguments)
	default:
		h.logger.WithField("tool", name).Warn("Unknown tool called")
		return errorResult("Unknown tool: " + name), nil
	}
}
