package models

import "errors"

// Error taxonomy shared across packages. Handlers map these to HTTP statuses;
// everything else stays transport-agnostic.
var (
	// ErrInvalidURL: the input URL matched no recognized video or playlist shape.
	ErrInvalidURL = errors.New("invalid or unrecognized URL")

	// ErrNotFound: the ID parsed fine but the upstream has no such resource.
	ErrNotFound = errors.New("resource not found")

	// ErrUpstream: the metadata API or extraction tool failed; retryable later.
	ErrUpstream = errors.New("upstream service unavailable")

	// ErrNoAudio: the video exists but exposes no audio-only stream. An
	// expected outcome, not a server fault.
	ErrNoAudio = errors.New("no audio-only stream available")

	// ErrRestricted: video rejected by the restricted-content policy
	// (age-restricted or non-embeddable while RejectRestricted is on).
	ErrRestricted = errors.New("video restricted by policy")
)
