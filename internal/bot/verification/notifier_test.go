package verification

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

func newTestNotifier(t *testing.T) (*DMNotifier, *MockChatClient) {
	t.Helper()
	nopLogger := zerolog.Nop()
	chat := new(MockChatClient)
	return NewDMNotifier(chat, &nopLogger), chat
}

func approvedEvent() ports.Event {
	return ports.Event{
		Topic: TopicApproved,
		Data: ApprovedEvent{
			Request:     domain.VerificationRequest{GuildID: "g1", UserID: "u1", State: domain.StateApproved},
			GuildName:   "Test Guild",
			Interaction: ports.InteractionRef{ID: "i2", Token: "tok2"},
		},
	}
}

func TestDMNotifier_ApprovalDMDelivered(t *testing.T) {
	n, chat := newTestNotifier(t)

	chat.On("SendDirectMessage", mock.Anything, "u1", mock.MatchedBy(func(e ports.Embed) bool {
		return strings.Contains(e.Description, "Test Guild")
	})).Return(nil).Once()

	if err := n.handleApproved(context.Background(), approvedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
	chat.AssertNotCalled(t, "Followup", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDMNotifier_ApprovalDMFailureInformsModerator(t *testing.T) {
	n, chat := newTestNotifier(t)

	chat.On("SendDirectMessage", mock.Anything, "u1", mock.Anything).Return(domain.ErrDMUndeliverable).Once()
	chat.On("Followup", mock.Anything, ports.InteractionRef{ID: "i2", Token: "tok2"},
		mock.MatchedBy(func(e ports.Embed) bool { return e.Title == "DM Not Delivered" }), true).Return(nil).Once()

	if err := n.handleApproved(context.Background(), approvedEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}

func TestDMNotifier_DenialDMCarriesReason(t *testing.T) {
	n, chat := newTestNotifier(t)

	event := ports.Event{
		Topic: TopicDenied,
		Data: DeniedEvent{
			Request:     domain.VerificationRequest{GuildID: "g1", UserID: "u1", State: domain.StateDenied},
			GuildName:   "Test Guild",
			Reason:      "account too new",
			Interaction: ports.InteractionRef{ID: "i2"},
		},
	}

	chat.On("SendDirectMessage", mock.Anything, "u1", mock.MatchedBy(func(e ports.Embed) bool {
		return strings.Contains(e.Description, "account too new")
	})).Return(nil).Once()

	if err := n.handleDenied(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}

func TestDMNotifier_DenialDMFailureInformsModerator(t *testing.T) {
	n, chat := newTestNotifier(t)

	event := ports.Event{
		Topic: TopicDenied,
		Data: DeniedEvent{
			Request:     domain.VerificationRequest{GuildID: "g1", UserID: "u1", State: domain.StateDenied},
			GuildName:   "Test Guild",
			Reason:      "no",
			Interaction: ports.InteractionRef{ID: "i2"},
		},
	}

	chat.On("SendDirectMessage", mock.Anything, "u1", mock.Anything).Return(domain.ErrDMUndeliverable).Once()
	chat.On("Followup", mock.Anything, mock.Anything, mock.Anything, true).Return(nil).Once()

	if err := n.handleDenied(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chat.AssertExpectations(t)
}
