package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yinterview/forum-agent/internal/mcpadapter"
	"github.com/yinterview/forum-agent/internal/setup"
)

func main() {
	// Setup logging; stdout belongs to the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := setup.LoadEnvConfig()
	app, err := setup.Wire(ctx, env, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	server := createMCPServer(app)

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		os.Exit(1)
	}
}

func createMCPServer(app *setup.App) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "forum-agent",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_answer",
		Description: "Run a multi-critic forum discussion over one interview question/answer pair and return the final evaluation",
	}, mcpadapter.NewEvaluateAnswerHandler(app.Coordinator))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_case",
		Description: "Store and index one historical interview case for future retrieval-grounded critiques",
	}, mcpadapter.NewAddCaseHandler(app.Ingestor))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_session",
		Description: "Evaluate a whole interview transcript question by question and return the session report",
	}, mcpadapter.NewEvaluateSessionHandler(app.SessionEvaluator))

	return server
}
