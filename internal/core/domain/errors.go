package domain

import "errors"

var (
	// ErrUnknownMember is the platform's "member no longer in guild" error,
	// translated at the adapter boundary.
	ErrUnknownMember = errors.New("member not found in guild")

	// ErrUnknownChannel means the target channel no longer exists or is
	// inaccessible to the bot.
	ErrUnknownChannel = errors.New("channel not found")

	// ErrDMUndeliverable means a direct message could not be delivered,
	// typically because the recipient has DMs disabled.
	ErrDMUndeliverable = errors.New("direct message could not be delivered")

	// ErrMalformedComponentID means a component custom-id did not match the
	// fixed grammar.
	ErrMalformedComponentID = errors.New("malformed component id")

	// ErrRequestActive means a verification request for this member is
	// already open.
	ErrRequestActive = errors.New("verification request already active")

	// ErrDecisionInProgress means another moderator is already deciding
	// this request.
	ErrDecisionInProgress = errors.New("decision already in progress")

	// ErrRequestResolved means the request has already been approved or
	// denied.
	ErrRequestResolved = errors.New("verification request already resolved")
)
