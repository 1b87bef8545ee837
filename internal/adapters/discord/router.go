package discord

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"Saya/internal/bot/messages"
	"Saya/internal/core/ports"
)

// Router is the dispatcher: it converts gateway events into generic
// updates and routes each one to exactly one handler. Registration happens
// during startup; the tables are never mutated afterwards.
type Router struct {
	log    zerolog.Logger
	client ports.ChatClient
	prefix string

	commandHandlers   map[string]ports.CommandHandler
	slashHandlers     map[string]ports.SlashHandler
	componentHandlers []ports.ComponentHandler
	modalHandlers     []ports.ModalHandler
}

// NewRouter creates the dispatcher. 'prefix' is the leading token for
// message commands (e.g. ".").
func NewRouter(prefix string, client ports.ChatClient, baseLogger *zerolog.Logger) *Router {
	return &Router{
		log:             baseLogger.With().Str("component", "router").Logger(),
		client:          client,
		prefix:          prefix,
		commandHandlers: make(map[string]ports.CommandHandler),
		slashHandlers:   make(map[string]ports.SlashHandler),
	}
}

// RegisterCommandHandler adds a prefix-command plugin under its name and
// all aliases.
func (r *Router) RegisterCommandHandler(handler ports.CommandHandler) {
	r.commandHandlers[handler.Name()] = handler
	for _, alias := range handler.Aliases() {
		r.commandHandlers[alias] = handler
	}
	r.log.Info().Str("command", handler.Name()).Msg("Registered command handler")
}

// RegisterSlashHandler adds a slash-command plugin.
func (r *Router) RegisterSlashHandler(handler ports.SlashHandler) {
	r.slashHandlers[handler.Command().Name] = handler
	r.log.Info().Str("command", handler.Command().Name).Msg("Registered slash handler")
}

// RegisterComponentHandler adds a button plugin. Handlers are matched by
// custom-id prefix, longest prefix first.
func (r *Router) RegisterComponentHandler(handler ports.ComponentHandler) {
	r.componentHandlers = append(r.componentHandlers, handler)
	sort.SliceStable(r.componentHandlers, func(i, j int) bool {
		return len(r.componentHandlers[i].Prefix()) > len(r.componentHandlers[j].Prefix())
	})
	r.log.Info().Str("prefix", handler.Prefix()).Msg("Registered component handler")
}

// RegisterModalHandler adds a modal-submission plugin.
func (r *Router) RegisterModalHandler(handler ports.ModalHandler) {
	r.modalHandlers = append(r.modalHandlers, handler)
	r.log.Info().Str("prefix", handler.Prefix()).Msg("Registered modal handler")
}

// SlashCommands returns the definitions of every registered slash command,
// for gateway registration at startup.
func (r *Router) SlashCommands() []ports.SlashCommand {
	out := make([]ports.SlashCommand, 0, len(r.slashHandlers))
	for _, h := range r.slashHandlers {
		out = append(out, h.Command())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// HandleMessage routes one MessageCreate event. Unrecognized commands fall
// through silently.
func (r *Router) HandleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, r.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, r.prefix))
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	handler, ok := r.commandHandlers[name]
	if !ok {
		return
	}

	update := r.parseMessage(m)
	update.Command = name
	update.Args = fields[1:]

	ctxLogger := r.log.With().
		Str("command", name).
		Str("user_id", update.UserID).
		Str("guild_id", update.GuildID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	if err := handler.Handle(ctx, update); err != nil {
		ctxLogger.Error().Err(err).Msg("Command handler failed")
		r.replyError(ctx, update)
	}
}

// HandleInteraction routes one InteractionCreate event: slash commands,
// button presses, and modal submissions. Every path produces a
// user-visible reply, success or error.
func (r *Router) HandleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	update := r.parseInteraction(i)
	if update == nil {
		return
	}

	ctxLogger := r.log.With().
		Str("user_id", update.UserID).
		Str("guild_id", update.GuildID).
		Logger()
	ctx = ctxLogger.WithContext(ctx)

	switch update.Kind {
	case ports.UpdateSlash:
		handler, ok := r.slashHandlers[update.Command]
		if !ok {
			ctxLogger.Warn().Str("command", update.Command).Msg("No slash handler found")
			return
		}
		ctxLogger.Info().Str("command", update.Command).Msg("Routing to slash handler")
		if err := handler.Handle(ctx, update); err != nil {
			ctxLogger.Error().Err(err).Str("command", update.Command).Msg("Slash handler failed")
			r.respondError(ctx, update)
		}

	case ports.UpdateButton:
		for _, handler := range r.componentHandlers {
			if strings.HasPrefix(update.CustomID, handler.Prefix()) {
				ctxLogger.Info().Str("custom_id", update.CustomID).Msg("Routing to component handler")
				if err := handler.Handle(ctx, update); err != nil {
					ctxLogger.Error().Err(err).Str("custom_id", update.CustomID).Msg("Component handler failed")
					r.respondError(ctx, update)
				}
				return
			}
		}
		ctxLogger.Warn().Str("custom_id", update.CustomID).Msg("No component handler found")
		r.respond(ctx, update, messages.Error("Unknown Action", "This action was not recognized."))

	case ports.UpdateModal:
		for _, handler := range r.modalHandlers {
			if strings.HasPrefix(update.CustomID, handler.Prefix()) {
				ctxLogger.Info().Str("custom_id", update.CustomID).Msg("Routing to modal handler")
				if err := handler.Handle(ctx, update); err != nil {
					ctxLogger.Error().Err(err).Str("custom_id", update.CustomID).Msg("Modal handler failed")
					r.respondError(ctx, update)
				}
				return
			}
		}
		ctxLogger.Warn().Str("custom_id", update.CustomID).Msg("No modal handler found")
		r.respond(ctx, update, messages.Error("Unknown Action", "This form was not recognized."))
	}
}

// parseMessage converts a MessageCreate into the generic update.
func (r *Router) parseMessage(m *discordgo.MessageCreate) *ports.Update {
	update := &ports.Update{
		Kind:      ports.UpdateMessage,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		UserID:    m.Author.ID,
	}
	if m.Member != nil {
		// MessageCreate members don't carry the user object.
		member := convertMember(m.GuildID, m.Member)
		member.User = convertUser(m.Author)
		update.Member = member
	}
	return update
}

// parseInteraction converts an InteractionCreate into the generic update.
// Returns nil for interaction types this bot doesn't handle.
func (r *Router) parseInteraction(i *discordgo.InteractionCreate) *ports.Update {
	update := &ports.Update{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Interaction: ports.InteractionRef{
			ID:    i.ID,
			AppID: i.AppID,
			Token: i.Token,
		},
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		update.UserID = i.Member.User.ID
		update.Member = convertMember(i.GuildID, i.Member)
	case i.User != nil:
		update.UserID = i.User.ID
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		update.Kind = ports.UpdateSlash
		update.Command = data.Name
		update.Options = make(map[string]string, len(data.Options))
		for _, opt := range data.Options {
			if s, ok := opt.Value.(string); ok {
				update.Options[opt.Name] = s
			}
		}

	case discordgo.InteractionMessageComponent:
		update.Kind = ports.UpdateButton
		update.CustomID = i.MessageComponentData().CustomID
		if i.Message != nil {
			update.MessageID = i.Message.ID
		}

	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		update.Kind = ports.UpdateModal
		update.CustomID = data.CustomID
		update.Inputs = make(map[string]string)
		for _, c := range data.Components {
			row, ok := c.(*discordgo.ActionsRow)
			if !ok {
				continue
			}
			for _, inner := range row.Components {
				if input, ok := inner.(*discordgo.TextInput); ok {
					update.Inputs[input.CustomID] = input.Value
				}
			}
		}

	default:
		return nil
	}

	return update
}

// respond sends an ephemeral embed reply, logging delivery failures only.
func (r *Router) respond(ctx context.Context, update *ports.Update, embed ports.Embed) {
	if err := r.client.Respond(ctx, update.Interaction, embed, true); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to send interaction reply")
	}
}

// respondError is the failure boundary for interactions: the invoker always
// sees a reply. If the handler already acknowledged the interaction the
// duplicate response fails, which is fine.
func (r *Router) respondError(ctx context.Context, update *ports.Update) {
	embed := messages.Error("Error", "Something went wrong while processing this action.")
	if err := r.client.Respond(ctx, update.Interaction, embed, true); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Error reply not delivered (interaction may already be acknowledged)")
	}
}

// replyError is the failure boundary for prefix commands.
func (r *Router) replyError(ctx context.Context, update *ports.Update) {
	embed := messages.Error("Error", "Something went wrong while running this command.")
	_, err := r.client.SendMessage(ctx, ports.SendMessageParams{
		ChannelID: update.ChannelID,
		Embeds:    []ports.Embed{embed},
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("Failed to send error reply")
	}
}
