package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bradykim7/pricecompare/internal/app"
	"github.com/bradykim7/pricecompare/internal/mcp"
	"github.com/bradykim7/pricecompare/pkg/config"
	"github.com/bradykim7/pricecompare/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// IMPORTANT: Only JSON goes to stdout for the MCP protocol; logs go to stderr
	log, err := logger.New("pricecompare", logger.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: os.Stderr,
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// Create context that will be canceled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize price comparison", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("Error closing resources", zap.Error(err))
		}
	}()

	server := mcp.NewServer(application.Service, application.HistoryEnabled, log)

	log.Info("Price comparison MCP server listening on stdio")
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Error("MCP server stopped", zap.Error(err))
		return
	}

	log.Info("Price comparison MCP server shut down")
}
