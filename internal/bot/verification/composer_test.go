package verification

import (
	"strings"
	"testing"
	"time"

	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

func TestComposeNotification(t *testing.T) {
	requester := &ports.Member{
		GuildID:  "g1",
		JoinedAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
		User: ports.User{
			ID:        "123456789",
			Username:  "newcomer",
			Tag:       "newcomer#0",
			Mention:   "<@123456789>",
			CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	embed, buttons := ComposeNotification(requester)

	// The requester's ID must appear in the description: the fallback scan
	// identifies the notification by it.
	if !strings.Contains(embed.Description, requester.User.ID) {
		t.Errorf("description does not contain the requester id: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, requester.User.Tag) {
		t.Errorf("description does not contain the requester tag: %q", embed.Description)
	}

	if len(buttons) != 1 || len(buttons[0]) != 2 {
		t.Fatalf("unexpected button layout: %+v", buttons)
	}
	if buttons[0][0].CustomID != domain.ApproveButtonID(requester.User.ID) {
		t.Errorf("approve custom id = %q", buttons[0][0].CustomID)
	}
	if buttons[0][1].CustomID != domain.DenyButtonID(requester.User.ID) {
		t.Errorf("deny custom id = %q", buttons[0][1].CustomID)
	}
	for _, b := range buttons[0] {
		if b.Disabled {
			t.Errorf("fresh notification button %q is disabled", b.CustomID)
		}
	}
}

func TestDecisionButtons_Disabled(t *testing.T) {
	rows := DecisionButtons("42", true)
	for _, row := range rows {
		for _, b := range row {
			if !b.Disabled {
				t.Errorf("button %q should be disabled", b.CustomID)
			}
		}
	}
}
