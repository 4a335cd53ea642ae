package verification

import (
	"github.com/attestor-eth/attestor/registry"
	"github.com/attestor-eth/attestor/verification/matching"
)

// Status is the terminal verdict for one descriptor.
type Status int

const (
	// StatusMatched indicates the artifact's bytecode corresponds to the on-chain evidence.
	StatusMatched Status = iota

	// StatusMismatched indicates both the deployed-code and creation-code comparisons failed.
	StatusMismatched

	// StatusErrored indicates a precondition failure prevented a verdict for this descriptor.
	StatusErrored
)

// String returns a display name for the status.
func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusMismatched:
		return "mismatched"
	default:
		return "errored"
	}
}

// MatchRoute identifies which comparison produced a successful match.
type MatchRoute int

const (
	// RouteRuntime indicates the deployed-code comparison matched.
	RouteRuntime MatchRoute = iota

	// RouteCreation indicates the creation-code fallback matched.
	RouteCreation
)

// String returns a display name for the route.
func (r MatchRoute) String() string {
	if r == RouteCreation {
		return "creation bytecode"
	}
	return "runtime bytecode"
}

// Outcome is the terminal result of verifying one descriptor. It is a pure function of the descriptor's compiled
// artifact and on-chain evidence at the moment of the call; no state survives across descriptors or invocations.
type Outcome struct {
	// Descriptor is the verification unit this outcome belongs to.
	Descriptor registry.Descriptor

	// Status is the terminal verdict.
	Status Status

	// Route identifies which comparison matched. Only meaningful when Status is StatusMatched.
	Route MatchRoute

	// RuntimeKind details how the deployed-code comparison matched (exact or metadata-tolerant). Only meaningful
	// when Status is StatusMatched via RouteRuntime.
	RuntimeKind matching.RuntimeMatchKind

	// ErrKind classifies the failure when Status is StatusErrored.
	ErrKind ErrorKind

	// Err carries the underlying error detail when Status is StatusErrored.
	Err error

	// CreationInput and CreationCompiled hold the two normalized operands of a failed creation-code comparison so
	// reporting layers can diff them. Only populated when Status is StatusMismatched.
	CreationInput    string
	CreationCompiled string
}

// erroredOutcome builds a terminal errored outcome for the provided descriptor.
func erroredOutcome(descriptor registry.Descriptor, kind ErrorKind, err error) Outcome {
	return Outcome{
		Descriptor: descriptor,
		Status:     StatusErrored,
		ErrKind:    kind,
		Err:        err,
	}
}
