package bot

import (
	"github.com/rs/zerolog"

	"Saya/internal/adapters/discord"
	"Saya/internal/bot/verification"
	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

// --- Define types for handler "constructors" ---
// This allows us to pass dependencies from main.go

type CommandHandlerConstructor func(*config.Config, ports.ChatClient, ports.GuildConfigStore, verification.Service, *zerolog.Logger) ports.CommandHandler
type SlashHandlerConstructor func(*config.Config, ports.ChatClient, ports.GuildConfigStore, verification.Service, *zerolog.Logger) ports.SlashHandler
type ComponentHandlerConstructor func(*config.Config, ports.ChatClient, ports.GuildConfigStore, verification.Service, *zerolog.Logger) ports.ComponentHandler
type ModalHandlerConstructor func(*config.Config, ports.ChatClient, ports.GuildConfigStore, verification.Service, *zerolog.Logger) ports.ModalHandler

// --- Create the global registries ---

var (
	commandRegistry   []CommandHandlerConstructor
	slashRegistry     []SlashHandlerConstructor
	componentRegistry []ComponentHandlerConstructor
	modalRegistry     []ModalHandlerConstructor
)

// RegisterCommand is called by handlers in their init() function.
func RegisterCommand(constructor CommandHandlerConstructor) {
	commandRegistry = append(commandRegistry, constructor)
}

// RegisterSlash is called by handlers in their init() function.
func RegisterSlash(constructor SlashHandlerConstructor) {
	slashRegistry = append(slashRegistry, constructor)
}

// RegisterComponent is called by handlers in their init() function.
func RegisterComponent(constructor ComponentHandlerConstructor) {
	componentRegistry = append(componentRegistry, constructor)
}

// RegisterModal is called by handlers in their init() function.
func RegisterModal(constructor ModalHandlerConstructor) {
	modalRegistry = append(modalRegistry, constructor)
}

// RegisterAllHandlers is the single function called by main.go.
// It builds all registered handlers and passes them to the router. After
// this returns the routing tables never change.
func RegisterAllHandlers(
	cfg *config.Config,
	router *discord.Router,
	chat ports.ChatClient,
	store ports.GuildConfigStore,
	workflow verification.Service,
	baseLogger *zerolog.Logger,
) {
	log := baseLogger.With().Str("component", "handler_registry").Logger()

	for _, constructor := range commandRegistry {
		router.RegisterCommandHandler(constructor(cfg, chat, store, workflow, baseLogger))
	}
	for _, constructor := range slashRegistry {
		router.RegisterSlashHandler(constructor(cfg, chat, store, workflow, baseLogger))
	}
	for _, constructor := range componentRegistry {
		router.RegisterComponentHandler(constructor(cfg, chat, store, workflow, baseLogger))
	}
	for _, constructor := range modalRegistry {
		router.RegisterModalHandler(constructor(cfg, chat, store, workflow, baseLogger))
	}

	log.Info().
		Int("commands", len(commandRegistry)).
		Int("slash", len(slashRegistry)).
		Int("components", len(componentRegistry)).
		Int("modals", len(modalRegistry)).
		Msg("All handlers registered")
}
