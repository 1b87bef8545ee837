package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestState is a custom type for the verification state machine.
type RequestState string

const (
	// StatePending means the request is open and awaiting a moderator.
	StatePending RequestState = "pending"
	// StateDeciding means a moderator is processing an approval right now.
	StateDeciding RequestState = "deciding"
	// StateDenyPending means a moderator opened the rejection-reason form
	// and has not submitted it yet.
	StateDenyPending RequestState = "deny_pending"
	// StateApproved and StateDenied are terminal.
	StateApproved RequestState = "approved"
	StateDenied   RequestState = "denied"
)

// VerificationRequest is one member's in-flight verification request.
// It lives only in the in-memory registry; the platform holds the
// canonical state of messages and roles.
type VerificationRequest struct {
	ID      uuid.UUID
	GuildID string
	UserID  string
	// MessageID is the moderator notification message, empty if the
	// notification could not be posted or the entry was recreated after
	// a restart.
	MessageID string
	State     RequestState
	// DecidedBy is the moderator who took (or is taking) the decision.
	DecidedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resolved reports whether the request reached a terminal state.
func (r *VerificationRequest) Resolved() bool {
	return r.State == StateApproved || r.State == StateDenied
}

// Active reports whether the request still awaits an outcome.
func (r *VerificationRequest) Active() bool {
	return !r.Resolved()
}
