package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"Saya/internal/core/ports"
	"Saya/internal/shared/config"
)

// Server owns the gateway session: it wires the router to gateway events,
// registers slash commands once connected, and closes the session on
// shutdown.
type Server struct {
	session *discordgo.Session
	router  *Router
	cfg     *config.Config
	log     zerolog.Logger
}

// NewSession creates an authenticated (but not yet connected) session with
// the intents this bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildMembers

	return session, nil
}

// NewServer creates a new gateway server.
func NewServer(
	session *discordgo.Session,
	router *Router,
	cfg *config.Config,
	baseLogger *zerolog.Logger,
) *Server {
	return &Server{
		session: session,
		router:  router,
		cfg:     cfg,
		log:     baseLogger.With().Str("component", "gateway_server").Logger(),
	}
}

// Start opens the gateway connection and blocks until the context is
// cancelled. Handler panics and gateway errors are logged by discordgo and
// never terminate the process.
func (s *Server) Start(ctx context.Context) error {
	s.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		s.log.Info().
			Str("username", r.User.Username).
			Int("guilds", len(r.Guilds)).
			Msg("Connected to gateway")

		status := fmt.Sprintf("%shelp | %s", s.cfg.CommandPrefix, s.cfg.BotName)
		if err := s.session.UpdateGameStatus(0, status); err != nil {
			s.log.Warn().Err(err).Msg("Failed to set presence")
		}
	})

	s.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		s.router.HandleMessage(context.Background(), m)
	})

	s.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		s.router.HandleInteraction(context.Background(), i)
	})

	if err := s.session.Open(); err != nil {
		return fmt.Errorf("open gateway connection: %w", err)
	}

	if err := s.registerSlashCommands(); err != nil {
		// The bot still works for prefix commands and components.
		s.log.Error().Err(err).Msg("Failed to register slash commands")
	}

	s.log.Info().Msg("Bot is running")
	<-ctx.Done()

	s.log.Info().Msg("Shutting down gateway connection...")
	if err := s.session.Close(); err != nil {
		s.log.Error().Err(err).Msg("Gateway close error")
		return err
	}
	s.log.Info().Msg("Gateway connection closed")
	return nil
}

// registerSlashCommands registers every routed slash command globally.
func (s *Server) registerSlashCommands() error {
	appID := s.session.State.User.ID

	for _, cmd := range s.router.SlashCommands() {
		if _, err := s.session.ApplicationCommandCreate(appID, "", toApplicationCommand(cmd)); err != nil {
			return fmt.Errorf("register %q: %w", cmd.Name, err)
		}
		s.log.Info().Str("command", cmd.Name).Msg("Slash command registered")
	}
	return nil
}

func toApplicationCommand(cmd ports.SlashCommand) *discordgo.ApplicationCommand {
	out := &discordgo.ApplicationCommand{
		Name:        cmd.Name,
		Description: cmd.Description,
	}
	for _, opt := range cmd.Options {
		option := &discordgo.ApplicationCommandOption{
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		}
		switch opt.Type {
		case ports.OptionUser:
			option.Type = discordgo.ApplicationCommandOptionUser
		case ports.OptionChannel:
			option.Type = discordgo.ApplicationCommandOptionChannel
			option.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
		case ports.OptionRole:
			option.Type = discordgo.ApplicationCommandOptionRole
		default:
			option.Type = discordgo.ApplicationCommandOptionString
		}
		out.Options = append(out.Options, option)
	}
	return out
}
