package verification

import (
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

// Event-bus topics published by the workflow. Decision replies happen
// inline; everything best-effort (requester DMs, disabling the original
// controls) is pushed through the bus.
const (
	TopicApproved = "verification:approved"
	TopicDenied   = "verification:denied"
	TopicResolved = "verification:resolved"
)

// ApprovedEvent is published after a role grant succeeds.
type ApprovedEvent struct {
	Request   domain.VerificationRequest
	GuildName string
	// Interaction is the deciding moderator's interaction, used to follow
	// up when the requester's DM cannot be delivered.
	Interaction ports.InteractionRef
}

// DeniedEvent is published after a rejection reason is submitted.
type DeniedEvent struct {
	Request     domain.VerificationRequest
	GuildName   string
	Reason      string
	Interaction ports.InteractionRef
}

// ResolvedEvent asks the resolver to disable the controls on the original
// notification message. MessageID may be empty when the notification was
// never posted or the registry entry was recreated after a restart.
type ResolvedEvent struct {
	GuildID   string
	UserID    string
	ChannelID string
	MessageID string
}
