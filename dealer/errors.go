package dealer

import "errors"

// Sentinel error kinds (spec §7). Call sites wrap these with fmt.Errorf's
// "%w" verb for context, matching the teacher's own error-wrapping idiom
// (internal/app/dealer.go), while still letting callers branch with
// errors.Is.
var (
	// ErrUnknownDealer is returned by the Registry when a name isn't
	// among the fixed set of recognized dealers.
	ErrUnknownDealer = errors.New("dealer: unknown dealer name")
	// ErrExhausted is returned by Draw once n draws have been made
	// since the last Reset.
	ErrExhausted = errors.New("dealer: exhausted")
	// ErrInconsistent signals an invariant violation inside a dealer
	// (Perfect's draw, or AdaptiveThreshold's final phase).
	// Should be unreachable; indicates a bug if ever observed.
	ErrInconsistent = errors.New("dealer: inconsistent internal state")
	// ErrInvalidConfig is returned by Reset for n < 1, for n > 256 in
	// Perfect, or for an AdaptiveThreshold configuration that can't
	// partition n into d mini-decks.
	ErrInvalidConfig = errors.New("dealer: invalid configuration")
)
