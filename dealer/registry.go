package dealer

import (
	"fmt"

	"github.com/cometbft/cometbft/libs/log"
	deadlock "github.com/sasha-s/go-deadlock"
)

// Constructor builds a fresh, unconfigured Dealer. Reset must be called
// before use.
type Constructor func() Dealer

// Registry maps the four fixed dealer names to their constructors. The
// name set is closed: {"bitmap", "fisher_yates", "adaptive", "perfect"}.
//
// Guarded by a deadlock-detecting RWMutex rather than sync.RWMutex: the
// registry is typically built once at startup and read concurrently by
// many game instances afterward, and a misplaced write-lock during that
// read-heavy phase is exactly the kind of mistake go-deadlock is built to
// surface in development and CI before it reaches production.
type Registry struct {
	mu           deadlock.RWMutex
	constructors map[string]Constructor
	log          log.Logger
}

// NewRegistry returns a Registry pre-populated with the four built-in
// dealer algorithms. logger may be nil, in which case lookups are silent.
func NewRegistry(logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	r := &Registry{
		constructors: make(map[string]Constructor, 4),
		log:          logger,
	}
	r.mustRegister("bitmap", func() Dealer { return &Bitmap{} })
	r.mustRegister("fisher_yates", func() Dealer { return &FisherYates{} })
	r.mustRegister("adaptive", func() Dealer { return &AdaptiveThreshold{} })
	r.mustRegister("perfect", func() Dealer { return &Perfect{} })
	return r
}

func (r *Registry) mustRegister(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = ctor
}

// Get returns a fresh Dealer instance for name, or ErrUnknownDealer.
func (r *Registry) Get(name string) (Dealer, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[name]
	r.mu.RUnlock()
	if !ok {
		r.log.Error("unknown dealer requested", "name", name)
		return nil, fmt.Errorf("registry.Get(%q): %w", name, ErrUnknownDealer)
	}
	return ctor(), nil
}

// Names returns the registered dealer names in a fixed order: bitmap,
// fisher_yates, adaptive, perfect.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fixed := []string{"bitmap", "fisher_yates", "adaptive", "perfect"}
	out := make([]string, 0, len(fixed))
	for _, n := range fixed {
		if _, ok := r.constructors[n]; ok {
			out = append(out, n)
		}
	}
	return out
}
