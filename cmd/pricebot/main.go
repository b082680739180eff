package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bradykim7/pricecompare/internal/app"
	"github.com/bradykim7/pricecompare/internal/bot"
	"github.com/bradykim7/pricecompare/pkg/config"
	"github.com/bradykim7/pricecompare/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New("pricebot", logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := cfg.ValidateBot(); err != nil {
		log.Fatal("Invalid bot configuration", zap.Error(err))
	}

	// Create context that will be canceled on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sc := make(chan os.Signal, 1)
		signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
		<-sc
		log.Info("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize price comparison", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("Error closing resources", zap.Error(err))
		}
	}()

	// Initialize and run the bot
	discordBot, err := bot.New(cfg, application.Service, log)
	if err != nil {
		log.Fatal("Failed to initialize bot", zap.Error(err))
	}

	if err := discordBot.Start(ctx); err != nil {
		log.Error("Bot error", zap.Error(err))
		return
	}

	log.Info("Discord bot shut down successfully")
}
