package verification

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"Saya/internal/core/ports"
)

// notificationScanLimit is how far back the fallback scan looks for the
// original notification message.
const notificationScanLimit = 50

// Resolver disables the approve/deny controls on the original notification
// once a decision lands, leaving the embed untouched. It edits directly by
// the registry's message reference and falls back to scanning recent
// channel history when that reference is missing or stale. Everything here
// is best-effort; failures are logged, never surfaced.
type Resolver struct {
	log  zerolog.Logger
	chat ports.ChatClient
}

// NewResolver creates the resolver.
func NewResolver(chat ports.ChatClient, baseLogger *zerolog.Logger) *Resolver {
	return &Resolver{
		log:  baseLogger.With().Str("component", "notification_resolver").Logger(),
		chat: chat,
	}
}

// Register subscribes the resolver to resolution events.
func (r *Resolver) Register(bus ports.EventBus) {
	bus.Subscribe(TopicResolved, r.handleResolved)
}

func (r *Resolver) handleResolved(ctx context.Context, event ports.Event) error {
	ev, ok := event.Data.(ResolvedEvent)
	if !ok {
		r.log.Error().Str("topic", event.Topic).Msg("Unexpected event payload")
		return nil
	}

	log := r.log.With().Str("user_id", ev.UserID).Str("channel_id", ev.ChannelID).Logger()
	disabled := DecisionButtons(ev.UserID, true)

	if ev.MessageID != "" {
		err := r.chat.EditMessageButtons(ctx, ev.ChannelID, ev.MessageID, disabled)
		if err == nil {
			log.Debug().Str("message_id", ev.MessageID).Msg("Notification controls disabled")
			return nil
		}
		log.Warn().Err(err).Str("message_id", ev.MessageID).Msg("Direct edit failed, falling back to scan")
	}

	msgs, err := r.chat.RecentMessages(ctx, ev.ChannelID, notificationScanLimit)
	if err != nil {
		log.Warn().Err(err).Msg("Could not scan notify channel")
		return nil
	}

	for i := range msgs {
		msg := &msgs[i]
		if !matchesNotification(msg, ev.UserID) {
			continue
		}
		if err := r.chat.EditMessageButtons(ctx, ev.ChannelID, msg.ID, disabled); err != nil {
			log.Warn().Err(err).Str("message_id", msg.ID).Msg("Failed to disable notification controls")
		}
		return nil
	}

	log.Debug().Msg("No matching notification found in recent history")
	return nil
}

// matchesNotification reports whether a message is the still-open
// notification for the given requester.
func matchesNotification(msg *ports.Message, userID string) bool {
	return len(msg.Embeds) > 0 &&
		strings.Contains(msg.Embeds[0].Description, userID) &&
		msg.HasEnabledButtons()
}
