package domain

import "errors"

var (
	// ErrProposalAlreadyDecided is thrown when responding to a proposal that already left the pending status
	ErrProposalAlreadyDecided = errors.New("trade proposal has already been decided")
	// ErrProposalExpired is thrown when responding to a proposal past its expiration time
	ErrProposalExpired = errors.New("trade proposal is expired")
	// ErrProposalNotYetExpired ...
	ErrProposalNotYetExpired = errors.New("trade proposal expiration time is not reached")
	// ErrProposalNullExpiryTime ...
	ErrProposalNullExpiryTime = errors.New("trade proposal must have an expiration time set")
	// ErrProposalMustBeAccepted is thrown when completing a proposal that was never accepted
	ErrProposalMustBeAccepted = errors.New("trade proposal must be in accepted status")
	// ErrItemNotActive ...
	ErrItemNotActive = errors.New("item is not in active status")
	// ErrItemNotFound ...
	ErrItemNotFound = errors.New("item not found")
	// ErrProposalNotFound ...
	ErrProposalNotFound = errors.New("trade proposal not found")
	// ErrConversationNotFound ...
	ErrConversationNotFound = errors.New("conversation not found")
)
