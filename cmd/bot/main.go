package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"Saya/internal/adapters/discord"
	"Saya/internal/adapters/eventbus"
	"Saya/internal/adapters/jsonstore"
	"Saya/internal/bot"
	_ "Saya/internal/bot/handlers" // Register all handler plugins
	"Saya/internal/bot/verification"
	"Saya/internal/shared/config"
	"Saya/internal/shared/logger"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().Msg("Logger initialized")

	if isDevMode {
		color.New(color.FgHiMagenta, color.Bold).Printf("\n  %s\n", cfg.BotName)
		color.New(color.FgHiBlack).Println("  member verification bot")
		fmt.Println()
	}

	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("prefix", cfg.CommandPrefix).
		Str("guild_configs", cfg.GuildConfigPath).
		Msg("Configuration loaded")

	// 3. Initialize Adapters
	store := jsonstore.NewGuildConfigStore(cfg.GuildConfigPath, &baseLogger)
	bus := eventbus.NewInMemoryBus(&baseLogger)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to create Discord session")
	}
	chat := discord.NewClient(session, &baseLogger)

	// 4. Initialize the Verification Workflow
	registry := verification.NewRegistry(&baseLogger)
	workflow := verification.NewWorkflow(chat, store, registry, bus, &baseLogger)

	verification.NewDMNotifier(chat, &baseLogger).Register(bus)
	verification.NewResolver(chat, &baseLogger).Register(bus)

	// 5. Build the Router and register all handler plugins
	router := discord.NewRouter(cfg.CommandPrefix, chat, &baseLogger)
	bot.RegisterAllHandlers(cfg, router, chat, store, workflow, &baseLogger)

	baseLogger.Info().Msg("All services initialized successfully")

	// 6. Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := discord.NewServer(session, router, cfg, &baseLogger)
	if err := server.Start(ctx); err != nil {
		baseLogger.Fatal().Err(err).Msg("Gateway server failed")
	}

	baseLogger.Info().Msg("Shutdown complete")
}
