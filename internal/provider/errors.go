package provider

import "errors"

// Error taxonomy for upstream calls. Both kinds are recoverable for a single
// provider call: the orchestrator drops the source and continues.
var (
	// ErrUpstreamUnavailable covers network failures, timeouts and non-2xx
	// responses from a provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedPayload covers JSON parse failures and missing expected
	// nested paths (e.g. an absent chart.result[0]).
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrMissingCredential means the provider was skipped because no API key
	// is configured for it. Never fatal.
	ErrMissingCredential = errors.New("missing provider credential")
)
