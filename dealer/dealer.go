// Package dealer implements the four sublinear-memory shuffle algorithms
// (Bitmap, FisherYates, AdaptiveThreshold, Perfect) behind one common
// contract, plus a name-keyed registry for selecting among them.
//
// Each algorithm is a concrete struct implementing Dealer directly —
// the teacher's own code (internal/app) never reaches for an interface
// hierarchy where a handful of concrete types will do, and a tagged
// dispatch here would only add an indirection the four concrete structs
// don't need.
package dealer

import "onchainpoker/dealerlab/rng"

// Options configures Reset. Unknown/zero fields fall back to the
// algorithm's documented default; only AdaptiveThreshold consults them.
type Options struct {
	// MBits is AdaptiveThreshold's memory-budget parameter in bits.
	// Zero means "use the default" (64).
	MBits int
	// Encoding selects how AdaptiveThreshold accounts for its
	// theoretical bit cost: "naive" (default) or "holes_elias_doc".
	// Both have identical observable draw behavior.
	Encoding string
}

const (
	defaultMBits    = 64
	defaultEncoding = "naive"
)

func (o Options) mBits() int {
	if o.MBits <= 0 {
		return defaultMBits
	}
	return o.MBits
}

func (o Options) encoding() string {
	if o.Encoding == "" {
		return defaultEncoding
	}
	return o.Encoding
}

// StateSummary is the diagnostic record every dealer reports after Reset.
// TheoreticalBits is the ideal information-theoretic cost of the dealer's
// private state; MemoryBytes is the actual cost of its in-memory
// representation. Extra carries algorithm-specific fields (e.g. "d" and
// "phase" for AdaptiveThreshold, "w" for Perfect).
type StateSummary struct {
	Algorithm       string
	N               int
	Drawn           int
	Remaining       int
	TheoreticalBits int
	MemoryBytes     int
	Extra           map[string]any
}

// Dealer is the common contract all four shuffle algorithms satisfy.
type Dealer interface {
	// Reset discards prior state and prepares to deal a permutation of
	// {0, ..., n-1}. n must be >= 1.
	Reset(n int, source rng.Source, opts Options) error
	// Draw returns the next card id, or ErrExhausted once n draws have
	// been made since the last Reset.
	Draw() (int, error)
	// Remaining returns n - num_drawn.
	Remaining() int
	// PeekNextDistribution returns the exact distribution of the next
	// draw conditional on history. The second return is false iff the
	// dealer is exhausted.
	PeekNextDistribution() (map[int]float64, bool)
	// StateSummary returns a diagnostic record of the dealer's state.
	StateSummary() StateSummary
}
