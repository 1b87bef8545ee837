package verification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"Saya/internal/bot/messages"
	"Saya/internal/core/ports"
)

// DMNotifier delivers the outcome to the requester by direct message.
// Delivery is best-effort: when the DM bounces (DMs disabled, user gone),
// the acting moderator gets an ephemeral follow-up and the decision stands.
type DMNotifier struct {
	log  zerolog.Logger
	chat ports.ChatClient
}

// NewDMNotifier creates the notifier.
func NewDMNotifier(chat ports.ChatClient, baseLogger *zerolog.Logger) *DMNotifier {
	return &DMNotifier{
		log:  baseLogger.With().Str("component", "dm_notifier").Logger(),
		chat: chat,
	}
}

// Register subscribes the notifier to decision outcomes.
func (n *DMNotifier) Register(bus ports.EventBus) {
	bus.Subscribe(TopicApproved, n.handleApproved)
	bus.Subscribe(TopicDenied, n.handleDenied)
}

func (n *DMNotifier) handleApproved(ctx context.Context, event ports.Event) error {
	ev, ok := event.Data.(ApprovedEvent)
	if !ok {
		n.log.Error().Str("topic", event.Topic).Msg("Unexpected event payload")
		return nil
	}

	embed := messages.Success(
		"Verification Approved! ✅",
		fmt.Sprintf(
			"Congratulations! Your verification on **%s** was approved.\n\n"+
				"You now have full access to every channel and feature of the server.",
			ev.GuildName,
		),
	)

	if err := n.chat.SendDirectMessage(ctx, ev.Request.UserID, embed); err != nil {
		n.log.Warn().Err(err).Str("user_id", ev.Request.UserID).Msg("Approval DM not delivered")
		n.informModerator(ctx, ev.Interaction, ev.Request.UserID)
	}
	return nil
}

func (n *DMNotifier) handleDenied(ctx context.Context, event ports.Event) error {
	ev, ok := event.Data.(DeniedEvent)
	if !ok {
		n.log.Error().Str("topic", event.Topic).Msg("Unexpected event payload")
		return nil
	}

	embed := messages.Error(
		"Verification Denied ❌",
		fmt.Sprintf(
			"Your verification request on **%s** was denied.\n\n"+
				"**Reason:** %s\n\n"+
				"Contact the moderation team if you believe this was a mistake.",
			ev.GuildName,
			ev.Reason,
		),
	)

	if err := n.chat.SendDirectMessage(ctx, ev.Request.UserID, embed); err != nil {
		n.log.Warn().Err(err).Str("user_id", ev.Request.UserID).Msg("Denial DM not delivered")
		n.informModerator(ctx, ev.Interaction, ev.Request.UserID)
	}
	return nil
}

// informModerator tells the deciding moderator that the requester never saw
// the outcome. The same policy applies to approvals and denials.
func (n *DMNotifier) informModerator(ctx context.Context, ref ports.InteractionRef, userID string) {
	embed := messages.Error(
		"DM Not Delivered",
		fmt.Sprintf("Could not send a direct message to <@%s>. They may have DMs disabled.", userID),
	)
	if err := n.chat.Followup(ctx, ref, embed, true); err != nil {
		n.log.Warn().Err(err).Str("user_id", userID).Msg("Moderator follow-up not delivered")
	}
}
