package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"lheq-stats/internal/config"
	"lheq-stats/internal/mcp"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := cfg.NewLogger()

	teams, err := config.OpenStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open team store")
	}
	handler := mcp.NewStandingsHandler(teams, cfg.Divisions, cfg.IncludeTournaments, logger)
	mcpServer := mcp.NewStatsMCPServer(handler, logger)
	if mcpServer == nil {
		logger.Fatal("Failed to create MCP server")
	}

	logger.Info("Starting LHEQ Statistics MCP Server...")

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
		os.Exit(1)
	}
}
