package verification

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"Saya/internal/core/domain"
)

func newTestRegistry(t *testing.T) (*Registry, *time.Time) {
	t.Helper()
	nopLogger := zerolog.Nop()
	r := NewRegistry(&nopLogger)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRegistry_Open_RefusesActiveDuplicate(t *testing.T) {
	r, _ := newTestRegistry(t)

	if _, err := r.Open("g1", "u1"); err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if _, err := r.Open("g1", "u1"); !errors.Is(err, domain.ErrRequestActive) {
		t.Errorf("second open error = %v, want ErrRequestActive", err)
	}

	// A different member or guild is unaffected.
	if _, err := r.Open("g1", "u2"); err != nil {
		t.Errorf("open for other user failed: %v", err)
	}
	if _, err := r.Open("g2", "u1"); err != nil {
		t.Errorf("open in other guild failed: %v", err)
	}
}

func TestRegistry_Open_ReplacesResolved(t *testing.T) {
	r, _ := newTestRegistry(t)

	first, err := r.Open("g1", "u1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	r.Resolve("g1", "u1", "mod1", false)

	second, err := r.Open("g1", "u1")
	if err != nil {
		t.Fatalf("re-open after denial failed: %v", err)
	}
	if second.ID == first.ID {
		t.Error("re-opened request kept the old identity")
	}
	if second.State != domain.StatePending {
		t.Errorf("state = %s, want pending", second.State)
	}
}

func TestRegistry_BeginDecision_Conflicts(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Open("g1", "u1")

	if _, err := r.BeginDecision("g1", "u1", "mod1"); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if _, err := r.BeginDecision("g1", "u1", "mod2"); !errors.Is(err, domain.ErrDecisionInProgress) {
		t.Errorf("concurrent claim error = %v, want ErrDecisionInProgress", err)
	}

	r.Resolve("g1", "u1", "mod1", true)
	if _, err := r.BeginDecision("g1", "u1", "mod2"); !errors.Is(err, domain.ErrRequestResolved) {
		t.Errorf("claim on resolved error = %v, want ErrRequestResolved", err)
	}
}

func TestRegistry_BeginDecision_RecreatesUnknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	// No Open: simulates a restart that lost the registry.
	req, err := r.BeginDecision("g1", "u1", "mod1")
	if err != nil {
		t.Fatalf("claim on unknown request failed: %v", err)
	}
	if req.State != domain.StateDeciding {
		t.Errorf("state = %s, want deciding", req.State)
	}
	if req.MessageID != "" {
		t.Errorf("recreated request has message id %q", req.MessageID)
	}
}

func TestRegistry_DenyPending_ExpiryAndOwnership(t *testing.T) {
	r, now := newTestRegistry(t)
	r.Open("g1", "u1")
	r.BeginDecision("g1", "u1", "mod1")
	r.MarkDenyPending("g1", "u1")

	// The owning moderator may always re-claim (re-opening the form).
	if _, err := r.BeginDecision("g1", "u1", "mod1"); err != nil {
		t.Errorf("owner re-claim failed: %v", err)
	}
	r.MarkDenyPending("g1", "u1")

	// Another moderator is locked out while the form is fresh.
	if _, err := r.BeginDecision("g1", "u1", "mod2"); !errors.Is(err, domain.ErrDecisionInProgress) {
		t.Errorf("fresh takeover error = %v, want ErrDecisionInProgress", err)
	}

	// Past the form's lifetime anyone may take over.
	*now = now.Add(denyPendingTTL + time.Minute)
	if _, err := r.BeginDecision("g1", "u1", "mod2"); err != nil {
		t.Errorf("expired takeover failed: %v", err)
	}
}

func TestRegistry_Release_ReturnsToPending(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Open("g1", "u1")
	r.BeginDecision("g1", "u1", "mod1")

	r.Release("g1", "u1")

	req := r.Get("g1", "u1")
	if req == nil {
		t.Fatal("request disappeared after release")
	}
	if req.State != domain.StatePending {
		t.Errorf("state = %s, want pending", req.State)
	}
	if req.DecidedBy != "" {
		t.Errorf("decided_by = %q, want empty", req.DecidedBy)
	}

	// Released requests can be claimed by anyone again.
	if _, err := r.BeginDecision("g1", "u1", "mod2"); err != nil {
		t.Errorf("claim after release failed: %v", err)
	}
}

func TestRegistry_Discard(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Open("g1", "u1")

	r.Discard("g1", "u1")

	if r.Get("g1", "u1") != nil {
		t.Error("discarded request still tracked")
	}
	if _, err := r.Open("g1", "u1"); err != nil {
		t.Errorf("re-open after discard failed: %v", err)
	}

	// Terminal entries stay for their retention window.
	r.Resolve("g1", "u2", "mod1", true)
	r.Discard("g1", "u2")
	if r.Get("g1", "u2") == nil {
		t.Error("discard removed a resolved entry")
	}
}

func TestRegistry_AttachMessage(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Open("g1", "u1")

	r.AttachMessage("g1", "u1", "msg42")

	req := r.Get("g1", "u1")
	if req == nil || req.MessageID != "msg42" {
		t.Errorf("message id not attached: %+v", req)
	}

	// Attaching to an unknown request is a no-op.
	r.AttachMessage("g1", "u9", "msg43")
	if r.Get("g1", "u9") != nil {
		t.Error("attach created a phantom request")
	}
}

func TestRegistry_SweepsOldResolvedEntries(t *testing.T) {
	r, now := newTestRegistry(t)
	r.Open("g1", "u1")
	r.Resolve("g1", "u1", "mod1", true)

	*now = now.Add(resolvedTTL + time.Hour)

	// Any mutating call sweeps.
	r.Open("g1", "u2")

	if r.Get("g1", "u1") != nil {
		t.Error("resolved entry survived past its retention window")
	}
}
