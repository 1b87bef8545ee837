package domain

import (
	"errors"
	"testing"
)

func TestParseDecisionID(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		want     DecisionRef
		wantErr  bool
	}{
		{
			name:     "approve",
			customID: "approve_verification_123456789",
			want:     DecisionRef{Action: ActionApprove, UserID: "123456789"},
		},
		{
			name:     "deny",
			customID: "deny_verification_987654321",
			want:     DecisionRef{Action: ActionDeny, UserID: "987654321"},
		},
		{
			name:     "unknown prefix",
			customID: "something_else_123",
			wantErr:  true,
		},
		{
			name:     "missing user id",
			customID: "approve_verification_",
			wantErr:  true,
		},
		{
			name:     "non numeric user id",
			customID: "deny_verification_abc",
			wantErr:  true,
		},
		{
			name:     "injected suffix",
			customID: "approve_verification_123_456",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecisionID(tt.customID)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecisionID(%q): expected error, got %+v", tt.customID, got)
				}
				if !errors.Is(err, ErrMalformedComponentID) {
					t.Errorf("ParseDecisionID(%q): error = %v, want ErrMalformedComponentID", tt.customID, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecisionID(%q): unexpected error: %v", tt.customID, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecisionID(%q) = %+v, want %+v", tt.customID, got, tt.want)
			}
		})
	}
}

func TestParseRejectionModalID(t *testing.T) {
	userID, err := ParseRejectionModalID("rejection_reason_modal_123456789")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "123456789" {
		t.Errorf("userID = %q, want %q", userID, "123456789")
	}

	if _, err := ParseRejectionModalID("rejection_reason_modal_"); err == nil {
		t.Error("expected error for empty user id")
	}
	if _, err := ParseRejectionModalID("some_other_modal_123"); err == nil {
		t.Error("expected error for foreign custom id")
	}
}

func TestComponentIDRoundTrip(t *testing.T) {
	const userID = "555666777"

	ref, err := ParseDecisionID(ApproveButtonID(userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Action != ActionApprove || ref.UserID != userID {
		t.Errorf("approve round trip = %+v", ref)
	}

	ref, err = ParseDecisionID(DenyButtonID(userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Action != ActionDeny || ref.UserID != userID {
		t.Errorf("deny round trip = %+v", ref)
	}

	got, err := ParseRejectionModalID(RejectionModalID(userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != userID {
		t.Errorf("modal round trip = %q, want %q", got, userID)
	}
}
