package verification

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

func newTestResolver(t *testing.T) (*Resolver, *MockChatClient) {
	t.Helper()
	nopLogger := zerolog.Nop()
	chat := new(MockChatClient)
	return NewResolver(chat, &nopLogger), chat
}

func resolvedEvent(messageID string) ports.Event {
	return ports.Event{
		Topic: TopicResolved,
		Data: ResolvedEvent{
			GuildID:   "g1",
			UserID:    "u1",
			ChannelID: "notify1",
			MessageID: messageID,
		},
	}
}

func disabledDecisionButtons() interface{} {
	return mock.MatchedBy(func(rows [][]ports.Button) bool {
		for _, row := range rows {
			for _, b := range row {
				if !b.Disabled {
					return false
				}
			}
		}
		return len(rows) > 0
	})
}

func TestResolver_DirectEdit(t *testing.T) {
	r, chat := newTestResolver(t)

	chat.On("EditMessageButtons", mock.Anything, "notify1", "msg1", disabledDecisionButtons()).Return(nil).Once()

	if err := r.handleResolved(context.Background(), resolvedEvent("msg1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
	chat.AssertNotCalled(t, "RecentMessages", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_ScanFallbackWhenMessageUnknown(t *testing.T) {
	r, chat := newTestResolver(t)

	history := []ports.Message{
		{
			// Unrelated message without embeds.
			ID: "m1",
		},
		{
			// Notification for a different user.
			ID:     "m2",
			Embeds: []ports.Embed{{Description: "**User:** other (u9)"}},
			Buttons: [][]ports.Button{{
				{CustomID: domain.ApproveButtonID("u9")},
			}},
		},
		{
			// Already resolved notification for the same user.
			ID:     "m3",
			Embeds: []ports.Embed{{Description: "**User:** requester (u1)"}},
			Buttons: [][]ports.Button{{
				{CustomID: domain.ApproveButtonID("u1"), Disabled: true},
				{CustomID: domain.DenyButtonID("u1"), Disabled: true},
			}},
		},
		{
			// The open notification the resolver must find.
			ID:     "m4",
			Embeds: []ports.Embed{{Description: "**User:** requester (u1)"}},
			Buttons: [][]ports.Button{{
				{CustomID: domain.ApproveButtonID("u1")},
				{CustomID: domain.DenyButtonID("u1")},
			}},
		},
	}

	chat.On("RecentMessages", mock.Anything, "notify1", notificationScanLimit).Return(history, nil).Once()
	chat.On("EditMessageButtons", mock.Anything, "notify1", "m4", disabledDecisionButtons()).Return(nil).Once()

	if err := r.handleResolved(context.Background(), resolvedEvent("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}

func TestResolver_FallsBackToScanAfterEditFailure(t *testing.T) {
	r, chat := newTestResolver(t)

	// The stored message was deleted; the direct edit fails.
	chat.On("EditMessageButtons", mock.Anything, "notify1", "gone", mock.Anything).Return(domain.ErrUnknownChannel).Once()
	chat.On("RecentMessages", mock.Anything, "notify1", notificationScanLimit).Return([]ports.Message{
		{
			ID:     "m1",
			Embeds: []ports.Embed{{Description: "**User:** requester (u1)"}},
			Buttons: [][]ports.Button{{
				{CustomID: domain.ApproveButtonID("u1")},
			}},
		},
	}, nil).Once()
	chat.On("EditMessageButtons", mock.Anything, "notify1", "m1", disabledDecisionButtons()).Return(nil).Once()

	if err := r.handleResolved(context.Background(), resolvedEvent("gone")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}

func TestResolver_ScanFailureIsSwallowed(t *testing.T) {
	r, chat := newTestResolver(t)

	chat.On("RecentMessages", mock.Anything, "notify1", notificationScanLimit).Return(nil, domain.ErrUnknownChannel).Once()

	// Best-effort: resolution never propagates an error.
	if err := r.handleResolved(context.Background(), resolvedEvent("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}

func TestResolver_NoMatchInHistory(t *testing.T) {
	r, chat := newTestResolver(t)

	chat.On("RecentMessages", mock.Anything, "notify1", notificationScanLimit).Return([]ports.Message{}, nil).Once()

	if err := r.handleResolved(context.Background(), resolvedEvent("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertNotCalled(t, "EditMessageButtons", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
