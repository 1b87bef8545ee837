package verification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"Saya/internal/bot/messages"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

// Service is the workflow surface the interaction handlers call.
type Service interface {
	// Initiate handles a member pressing the verification control.
	Initiate(ctx context.Context, update *ports.Update) error
	// Decide handles a moderator pressing approve or deny.
	Decide(ctx context.Context, ref domain.DecisionRef, update *ports.Update) error
	// ResolveDenial completes a denial once the rejection form is
	// submitted. The reason is already validated by the caller.
	ResolveDenial(ctx context.Context, requesterID, reason string, update *ports.Update) error
}

// Workflow is the stateless orchestrator of the verification sequence:
// request, notify, decide, resolve. The platform owns messages, roles, and
// members; the registry only tracks which requests are in flight.
type Workflow struct {
	log      zerolog.Logger
	chat     ports.ChatClient
	store    ports.GuildConfigStore
	registry *Registry
	bus      ports.EventBus
}

var _ Service = (*Workflow)(nil) // Ensure compliance

// NewWorkflow creates the verification workflow.
func NewWorkflow(
	chat ports.ChatClient,
	store ports.GuildConfigStore,
	registry *Registry,
	bus ports.EventBus,
	baseLogger *zerolog.Logger,
) *Workflow {
	return &Workflow{
		log:      baseLogger.With().Str("component", "verification_workflow").Logger(),
		chat:     chat,
		store:    store,
		registry: registry,
		bus:      bus,
	}
}

// Initiate acknowledges the requester, then posts the moderator
// notification. The acknowledgment succeeds even when the notify channel
// is gone; in that case the notification is skipped with a log line only.
func (w *Workflow) Initiate(ctx context.Context, update *ports.Update) error {
	log := w.log.With().Str("guild_id", update.GuildID).Str("user_id", update.UserID).Logger()

	if update.Member == nil {
		return w.respond(ctx, update, messages.Error(
			"Server Only",
			"Verification can only be requested inside a server.",
		))
	}

	cfg, err := w.store.Get(ctx, update.GuildID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return w.respond(ctx, update, notConfiguredEmbed())
	}

	if update.Member.HasRole(cfg.VerifiedRoleID) {
		return w.respond(ctx, update, messages.Success(
			"Already Verified ✅",
			"You are already verified on this server!\n\nYou have full access to every channel and feature.",
		))
	}

	if _, err := w.registry.Open(update.GuildID, update.UserID); err != nil {
		if errors.Is(err, domain.ErrRequestActive) {
			return w.respond(ctx, update, messages.New(
				"Request Already Sent 🔄",
				"Your verification request is already waiting for a moderator. Hang tight!",
			).WithColor(messages.ColorAccent).Build())
		}
		return err
	}

	ack := messages.New(
		"Verification Requested 🔄",
		"Your verification request was sent!\n\n"+
			"**Next steps:**\n"+
			"• A moderator will review your request shortly\n"+
			"• You will be notified once a decision is made\n\n"+
			"*Thanks for your patience!*",
	).WithColor(messages.ColorAccent).Build()
	if err := w.respond(ctx, update, ack); err != nil {
		return err
	}

	embed, buttons := ComposeNotification(update.Member)
	messageID, err := w.chat.SendMessage(ctx, ports.SendMessageParams{
		ChannelID: cfg.NotifyChannelID,
		Embeds:    []ports.Embed{embed},
		Buttons:   buttons,
	})
	if err != nil {
		// Best-effort: no retry, no queuing. The entry is dropped so the
		// member is not wedged behind a notification nobody ever saw.
		w.registry.Discard(update.GuildID, update.UserID)
		log.Warn().Err(err).Str("channel_id", cfg.NotifyChannelID).Msg("Moderator notification skipped")
		return nil
	}

	w.registry.AttachMessage(update.GuildID, update.UserID, messageID)
	log.Info().Str("message_id", messageID).Msg("Moderator notification posted")
	return nil
}

// Decide processes an approve/deny button press by a moderator.
func (w *Workflow) Decide(ctx context.Context, ref domain.DecisionRef, update *ports.Update) error {
	log := w.log.With().
		Str("guild_id", update.GuildID).
		Str("target_user_id", ref.UserID).
		Str("moderator_id", update.UserID).
		Str("action", string(ref.Action)).
		Logger()

	cfg, err := w.store.Get(ctx, update.GuildID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return w.respond(ctx, update, notConfiguredEmbed())
	}

	req, err := w.registry.BeginDecision(update.GuildID, ref.UserID, update.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrDecisionInProgress) || errors.Is(err, domain.ErrRequestResolved) {
			log.Info().Err(err).Msg("Decision refused")
			return w.respond(ctx, update, messages.Error(
				"Already Handled",
				"This verification request is already being handled by a moderator.",
			))
		}
		return err
	}

	if ref.Action == domain.ActionDeny {
		return w.openRejectionForm(ctx, ref.UserID, update)
	}
	return w.approve(ctx, cfg, req, update, log)
}

// openRejectionForm suspends the decision until the moderator submits a
// reason. The original controls stay as they are until then.
func (w *Workflow) openRejectionForm(ctx context.Context, requesterID string, update *ports.Update) error {
	modal := ports.Modal{
		CustomID: domain.RejectionModalID(requesterID),
		Title:    "Rejection Reason",
		Inputs: []ports.TextInput{{
			CustomID:    domain.RejectionReasonInputID,
			Label:       "Reason for the rejection:",
			Placeholder: "Type the reason this verification is being denied...",
			Paragraph:   true,
			Required:    true,
			MaxLength:   domain.MaxRejectionReasonLen,
		}},
	}

	if err := w.chat.ShowModal(ctx, update.Interaction, modal); err != nil {
		w.registry.Release(update.GuildID, requesterID)
		return fmt.Errorf("show rejection form: %w", err)
	}

	w.registry.MarkDenyPending(update.GuildID, requesterID)
	return nil
}

func (w *Workflow) approve(
	ctx context.Context,
	cfg *domain.GuildConfig,
	req domain.VerificationRequest,
	update *ports.Update,
	log zerolog.Logger,
) error {
	// Authoritative fetch: the gateway cache can miss members who joined
	// recently.
	member, err := w.chat.Member(ctx, update.GuildID, req.UserID)
	if err != nil {
		w.registry.Release(update.GuildID, req.UserID)
		if errors.Is(err, domain.ErrUnknownMember) {
			log.Info().Msg("Approval target left the guild")
			return w.respond(ctx, update, messages.Error(
				"User Not Found",
				"This user is no longer on the server, or left after requesting verification.",
			))
		}
		log.Error().Err(err).Msg("Member lookup failed during approval")
		return w.respond(ctx, update, approvalFailedEmbed())
	}

	if err := w.chat.AddRole(ctx, update.GuildID, req.UserID, cfg.VerifiedRoleID); err != nil {
		w.registry.Release(update.GuildID, req.UserID)
		if errors.Is(err, domain.ErrUnknownMember) {
			return w.respond(ctx, update, messages.Error(
				"User Not Found",
				"This user is no longer on the server, or left after requesting verification.",
			))
		}
		log.Error().Err(err).Msg("Role grant failed")
		return w.respond(ctx, update, approvalFailedEmbed())
	}

	resolved := w.registry.Resolve(update.GuildID, req.UserID, update.UserID, true)

	if err := w.respond(ctx, update, messages.Success(
		"Verification Approved ✅",
		fmt.Sprintf("%s was approved and verified successfully!", member.User.Tag),
	)); err != nil {
		log.Warn().Err(err).Msg("Approval reply not delivered")
	}

	w.bus.Publish(ctx, TopicApproved, ApprovedEvent{
		Request:     resolved,
		GuildName:   w.guildName(ctx, update.GuildID),
		Interaction: update.Interaction,
	})
	w.publishResolved(ctx, cfg, resolved)

	log.Info().Str("role_id", cfg.VerifiedRoleID).Msg("Verification approved")
	return nil
}

// ResolveDenial completes the denial once the rejection form comes back.
func (w *Workflow) ResolveDenial(ctx context.Context, requesterID, reason string, update *ports.Update) error {
	log := w.log.With().
		Str("guild_id", update.GuildID).
		Str("target_user_id", requesterID).
		Str("moderator_id", update.UserID).
		Logger()

	cfg, err := w.store.Get(ctx, update.GuildID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return w.respond(ctx, update, notConfiguredEmbed())
	}

	resolved := w.registry.Resolve(update.GuildID, requesterID, update.UserID, false)

	tag := requesterID
	if user, err := w.chat.User(ctx, requesterID); err == nil {
		tag = user.Tag
	}

	if err := w.respond(ctx, update, messages.Error(
		"Verification Denied ❌",
		fmt.Sprintf("The verification of %s was denied.\n\n**Reason:** %s", tag, reason),
	)); err != nil {
		log.Warn().Err(err).Msg("Denial reply not delivered")
	}

	w.bus.Publish(ctx, TopicDenied, DeniedEvent{
		Request:     resolved,
		GuildName:   w.guildName(ctx, update.GuildID),
		Reason:      reason,
		Interaction: update.Interaction,
	})
	w.publishResolved(ctx, cfg, resolved)

	log.Info().Msg("Verification denied")
	return nil
}

func (w *Workflow) publishResolved(ctx context.Context, cfg *domain.GuildConfig, req domain.VerificationRequest) {
	w.bus.Publish(ctx, TopicResolved, ResolvedEvent{
		GuildID:   req.GuildID,
		UserID:    req.UserID,
		ChannelID: cfg.NotifyChannelID,
		MessageID: req.MessageID,
	})
}

func (w *Workflow) guildName(ctx context.Context, guildID string) string {
	guild, err := w.chat.Guild(ctx, guildID)
	if err != nil {
		return "the server"
	}
	return guild.Name
}

func (w *Workflow) respond(ctx context.Context, update *ports.Update, embed ports.Embed) error {
	return w.chat.Respond(ctx, update.Interaction, embed, true)
}

func notConfiguredEmbed() ports.Embed {
	return messages.Error(
		"System Not Configured",
		"The verification system has not been set up on this server yet.",
	)
}

func approvalFailedEmbed() ports.Embed {
	return messages.Error(
		"Approval Failed",
		"Something went wrong while approving this verification. Try again.",
	)
}
