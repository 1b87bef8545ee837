package verification

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"Saya/internal/core/domain"
)

const (
	// denyPendingTTL bounds how long an unsubmitted rejection form keeps a
	// request locked. Discord interaction tokens expire after 15 minutes,
	// so an older form can't be submitted anyway.
	denyPendingTTL = 15 * time.Minute

	// resolvedTTL is how long terminal entries are kept before sweeping.
	resolvedTTL = 24 * time.Hour
)

type requestKey struct {
	guildID string
	userID  string
}

// Registry is the authoritative in-memory index of in-flight verification
// requests. It exists to close the double-decision race: two moderators
// pressing approve/deny concurrently both used to proceed, with the
// platform as the only serialization point. Entries do not survive a
// restart; resolution paths fall back to scanning the notify channel.
type Registry struct {
	mu       sync.Mutex
	requests map[requestKey]*domain.VerificationRequest
	now      func() time.Time
	log      zerolog.Logger
}

// NewRegistry creates an empty request registry.
func NewRegistry(baseLogger *zerolog.Logger) *Registry {
	return &Registry{
		requests: make(map[requestKey]*domain.VerificationRequest),
		now:      time.Now,
		log:      baseLogger.With().Str("component", "request_registry").Logger(),
	}
}

// Open records a new pending request. A still-active request for the same
// member is refused with domain.ErrRequestActive; a resolved one is
// replaced, so members can re-request after a denial.
func (r *Registry) Open(guildID, userID string) (domain.VerificationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	k := requestKey{guildID, userID}
	if existing, ok := r.requests[k]; ok && existing.Active() {
		return domain.VerificationRequest{}, fmt.Errorf("%w: user %s", domain.ErrRequestActive, userID)
	}

	now := r.now()
	req := &domain.VerificationRequest{
		ID:        uuid.New(),
		GuildID:   guildID,
		UserID:    userID,
		State:     domain.StatePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.requests[k] = req
	r.log.Info().Str("request_id", req.ID.String()).Str("user_id", userID).Msg("Verification request opened")
	return *req, nil
}

// AttachMessage records the moderator notification message for later
// direct resolution.
func (r *Registry) AttachMessage(guildID, userID, messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req, ok := r.requests[requestKey{guildID, userID}]; ok {
		req.MessageID = messageID
		req.UpdatedAt = r.now()
	}
}

// BeginDecision claims the request for one moderator. Another moderator's
// in-flight decision yields domain.ErrDecisionInProgress; a terminal
// request yields domain.ErrRequestResolved. An unknown request (registry
// lost to a restart) is recreated on the spot so decisions keep working.
// A moderator who opened the rejection form may re-claim their own
// request; anyone may claim it once the form has expired.
func (r *Registry) BeginDecision(guildID, userID, moderatorID string) (domain.VerificationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	k := requestKey{guildID, userID}
	now := r.now()

	req, ok := r.requests[k]
	if !ok {
		req = &domain.VerificationRequest{
			ID:        uuid.New(),
			GuildID:   guildID,
			UserID:    userID,
			State:     domain.StatePending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		r.requests[k] = req
		r.log.Info().Str("user_id", userID).Msg("Recreated unknown verification request for decision")
	}

	switch req.State {
	case domain.StateApproved, domain.StateDenied:
		return domain.VerificationRequest{}, domain.ErrRequestResolved
	case domain.StateDeciding:
		return domain.VerificationRequest{}, domain.ErrDecisionInProgress
	case domain.StateDenyPending:
		expired := now.Sub(req.UpdatedAt) > denyPendingTTL
		if !expired && req.DecidedBy != moderatorID {
			return domain.VerificationRequest{}, domain.ErrDecisionInProgress
		}
	}

	req.State = domain.StateDeciding
	req.DecidedBy = moderatorID
	req.UpdatedAt = now
	return *req, nil
}

// MarkDenyPending parks the request while the rejection form is open.
func (r *Registry) MarkDenyPending(guildID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req, ok := r.requests[requestKey{guildID, userID}]; ok && req.State == domain.StateDeciding {
		req.State = domain.StateDenyPending
		req.UpdatedAt = r.now()
	}
}

// Discard drops an unresolved request entirely. Used when the moderator
// notification could not be posted: nobody can decide a request no
// moderator ever sees, so the member must be able to re-request.
func (r *Registry) Discard(guildID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := requestKey{guildID, userID}
	if req, ok := r.requests[k]; ok && !req.Resolved() {
		delete(r.requests, k)
	}
}

// Release returns a claimed request to pending after a failed approval, so
// a moderator can retry or deny.
func (r *Registry) Release(guildID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req, ok := r.requests[requestKey{guildID, userID}]; ok && !req.Resolved() {
		req.State = domain.StatePending
		req.DecidedBy = ""
		req.UpdatedAt = r.now()
	}
}

// Resolve moves the request to its terminal state, creating the entry if
// the registry never saw it (restart mid-decision).
func (r *Registry) Resolve(guildID, userID, moderatorID string, approved bool) domain.VerificationRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := requestKey{guildID, userID}
	now := r.now()

	req, ok := r.requests[k]
	if !ok {
		req = &domain.VerificationRequest{
			ID:        uuid.New(),
			GuildID:   guildID,
			UserID:    userID,
			CreatedAt: now,
		}
		r.requests[k] = req
	}

	if approved {
		req.State = domain.StateApproved
	} else {
		req.State = domain.StateDenied
	}
	req.DecidedBy = moderatorID
	req.UpdatedAt = now

	r.log.Info().
		Str("request_id", req.ID.String()).
		Str("user_id", userID).
		Str("moderator_id", moderatorID).
		Str("state", string(req.State)).
		Msg("Verification request resolved")
	return *req
}

// Get returns a copy of the tracked request, or nil.
func (r *Registry) Get(guildID, userID string) *domain.VerificationRequest {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[requestKey{guildID, userID}]
	if !ok {
		return nil
	}
	cp := *req
	return &cp
}

// sweepLocked drops terminal entries past their retention window.
// Caller holds the mutex.
func (r *Registry) sweepLocked() {
	cutoff := r.now().Add(-resolvedTTL)
	for k, req := range r.requests {
		if req.Resolved() && req.UpdatedAt.Before(cutoff) {
			delete(r.requests, k)
		}
	}
}
