package domain

import (
	"fmt"
	"strings"
)

// Component custom-id grammar. User IDs are numeric snowflakes and never
// contain '_', which keeps the suffix unambiguous.
const (
	VerifyButtonID       = "verification"
	ApproveButtonPrefix  = "approve_verification_"
	DenyButtonPrefix     = "deny_verification_"
	RejectionModalPrefix = "rejection_reason_modal_"

	// RejectionReasonInputID is the text input inside the rejection modal.
	RejectionReasonInputID = "rejection_reason"

	// MaxRejectionReasonLen bounds the free-text rejection reason.
	MaxRejectionReasonLen = 1000
)

// DecisionAction is a moderator's choice on a verification request.
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionDeny    DecisionAction = "deny"
)

// DecisionRef is the typed payload carried by an approve/deny button.
type DecisionRef struct {
	Action DecisionAction
	UserID string
}

// ApproveButtonID builds the custom-id for the approve control.
func ApproveButtonID(userID string) string {
	return ApproveButtonPrefix + userID
}

// DenyButtonID builds the custom-id for the deny control.
func DenyButtonID(userID string) string {
	return DenyButtonPrefix + userID
}

// RejectionModalID builds the custom-id for the rejection-reason modal.
func RejectionModalID(userID string) string {
	return RejectionModalPrefix + userID
}

// ParseDecisionID parses an approve/deny button custom-id into a typed
// payload, validating the embedded user ID at the boundary.
func ParseDecisionID(customID string) (DecisionRef, error) {
	switch {
	case strings.HasPrefix(customID, ApproveButtonPrefix):
		ref := DecisionRef{Action: ActionApprove, UserID: customID[len(ApproveButtonPrefix):]}
		return ref, validateSnowflake(ref.UserID, customID)
	case strings.HasPrefix(customID, DenyButtonPrefix):
		ref := DecisionRef{Action: ActionDeny, UserID: customID[len(DenyButtonPrefix):]}
		return ref, validateSnowflake(ref.UserID, customID)
	default:
		return DecisionRef{}, fmt.Errorf("%w: %q", ErrMalformedComponentID, customID)
	}
}

// ParseRejectionModalID extracts the requester ID from a rejection-reason
// modal custom-id.
func ParseRejectionModalID(customID string) (string, error) {
	if !strings.HasPrefix(customID, RejectionModalPrefix) {
		return "", fmt.Errorf("%w: %q", ErrMalformedComponentID, customID)
	}
	userID := customID[len(RejectionModalPrefix):]
	if err := validateSnowflake(userID, customID); err != nil {
		return "", err
	}
	return userID, nil
}

func validateSnowflake(id, customID string) error {
	if id == "" {
		return fmt.Errorf("%w: %q", ErrMalformedComponentID, customID)
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: %q", ErrMalformedComponentID, customID)
		}
	}
	return nil
}
