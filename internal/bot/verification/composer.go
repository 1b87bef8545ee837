package verification

import (
	"fmt"

	"Saya/internal/bot/messages"
	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

// ComposeNotification builds the moderator-facing notification for one
// join request: an embed describing the requester plus enabled
// approve/deny controls. Pure function, no side effects.
//
// The embed description deliberately contains the requester's ID: the
// fallback scan locates the notification by that ID when the registry has
// no message reference.
func ComposeNotification(requester *ports.Member) (ports.Embed, [][]ports.Button) {
	description := fmt.Sprintf(
		"**User:** %s (%s)\n"+
			"**Mention:** %s\n"+
			"**Joined server:** <t:%d:R>\n"+
			"**Account created:** <t:%d:R>\n\n"+
			"*Use the buttons below to handle this request.*",
		requester.User.Tag,
		requester.User.ID,
		requester.User.Mention,
		requester.JoinedAt.Unix(),
		requester.User.CreatedAt.Unix(),
	)

	embed := messages.New("New Verification Request 📋", description).Build()
	return embed, DecisionButtons(requester.User.ID, false)
}

// DecisionButtons returns the approve/deny control pair for a requester.
func DecisionButtons(userID string, disabled bool) [][]ports.Button {
	return [][]ports.Button{{
		{
			Label:    "✅ Accept",
			CustomID: domain.ApproveButtonID(userID),
			Style:    ports.ButtonSuccess,
			Disabled: disabled,
		},
		{
			Label:    "❌ Deny",
			CustomID: domain.DenyButtonID(userID),
			Style:    ports.ButtonDanger,
			Disabled: disabled,
		},
	}}
}
