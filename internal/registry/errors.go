package registry

import "errors"

var (
	// ErrRegistry marks failures of the remote call itself: transport, auth,
	// permissions or a rejected mutation.
	ErrRegistry = errors.New("registry request failed")
	// ErrData marks responses that lack a field this tool needs.
	ErrData = errors.New("malformed registry response")
)
