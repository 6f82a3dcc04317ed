// Package shuffleguess implements the single-player card-guessing
// evaluation harness: at each turn the agent guesses the next card's type
// (0..51) before the configured dealer reveals it, and the running score
// is a proxy for how predictable that dealer's draws are.
package shuffleguess

import (
	"fmt"

	"github.com/cometbft/cometbft/libs/log"

	"onchainpoker/dealerlab/cards"
	"onchainpoker/dealerlab/dealer"
	"onchainpoker/dealerlab/rng"
)

// GameConfig configures a Game before InitGame. Zero values fall back to
// the documented defaults, matching the reference environment's two-deck
// default setup.
type GameConfig struct {
	NCards     int    // default 104
	NumDecks   int    // default 2, informational only
	ActionMode string // "type" (default, 52 actions) or "id" (NCards actions)
	DealerName string // default "adaptive"
	MBits      int    // default 64
	Encoding   string
}

const (
	defaultNCards     = 104
	defaultNumDecks   = 2
	defaultActionMode = "type"
	defaultDealerName = "adaptive"
	defaultMBits      = 64
)

func (c GameConfig) normalized() GameConfig {
	if c.NCards <= 0 {
		c.NCards = defaultNCards
	}
	if c.NumDecks <= 0 {
		c.NumDecks = defaultNumDecks
	}
	if c.ActionMode == "" {
		c.ActionMode = defaultActionMode
	}
	if c.DealerName == "" {
		c.DealerName = defaultDealerName
	}
	if c.MBits <= 0 {
		c.MBits = defaultMBits
	}
	return c
}

// State is the observation returned after InitGame/Step.
type State struct {
	Counts       [cards.NumTypes]int
	Turn         int
	N            int
	LastDrawnID  int
	HasLastDrawn bool
	DrawnIDs     []int
	DealerName   string
	MBits        int
	Encoding     string
	Score        int
	LegalActions []int
}

// Game drives one dealer through an episode of guess-then-reveal turns.
type Game struct {
	cfg      GameConfig
	registry *dealer.Registry
	log      log.Logger

	d           dealer.Dealer
	turn        int
	counts      [cards.NumTypes]int
	score       int
	drawnIDs    []int
	lastDrawnID int
	hasLast     bool
	done        bool
}

// NewGame builds a Game against the given registry. logger may be nil.
func NewGame(registry *dealer.Registry, logger log.Logger) *Game {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Game{registry: registry, log: logger, cfg: GameConfig{}.normalized()}
}

// Configure applies cfg ahead of the next InitGame call.
func (g *Game) Configure(cfg GameConfig) {
	g.cfg = cfg.normalized()
}

// InitGame starts a fresh episode with the given random source and
// returns the initial observation.
func (g *Game) InitGame(source rng.Source) (State, error) {
	d, err := g.registry.Get(g.cfg.DealerName)
	if err != nil {
		return State{}, fmt.Errorf("shuffleguess.InitGame: %w", err)
	}
	opts := dealer.Options{MBits: g.cfg.MBits, Encoding: g.cfg.Encoding}
	if err := d.Reset(g.cfg.NCards, source, opts); err != nil {
		return State{}, fmt.Errorf("shuffleguess.InitGame: %w", err)
	}

	g.d = d
	g.turn = 0
	g.counts = [cards.NumTypes]int{}
	g.score = 0
	g.drawnIDs = g.drawnIDs[:0]
	g.lastDrawnID = 0
	g.hasLast = false
	g.done = false

	g.log.Info("shuffleguess episode started", "dealer", g.cfg.DealerName, "n", g.cfg.NCards)
	return g.state(), nil
}

// Step plays one turn: action is the agent's guess at the next card's
// type (or id, under ActionMode "id"); the dealer then draws the actual
// next card and the guess is scored against it.
func (g *Game) Step(action int) (State, error) {
	if g.done {
		return State{}, fmt.Errorf("shuffleguess.Step: %w", ErrEpisodeOver)
	}

	drawnID, err := g.d.Draw()
	if err != nil {
		return State{}, fmt.Errorf("shuffleguess.Step: %w", err)
	}
	drawnType := cards.TypeID(drawnID)

	target := drawnType
	if g.cfg.ActionMode == "id" {
		target = drawnID
	}
	if action == target {
		g.score++
	}

	g.counts[drawnType]++
	g.drawnIDs = append(g.drawnIDs, drawnID)
	g.lastDrawnID = drawnID
	g.hasLast = true
	g.turn++

	if g.turn >= g.cfg.NCards {
		g.done = true
		g.log.Info("shuffleguess episode finished", "dealer", g.cfg.DealerName, "score", g.score, "n", g.cfg.NCards)
	}

	return g.state(), nil
}

func (g *Game) state() State {
	s := State{
		Counts:       g.counts,
		Turn:         g.turn,
		N:            g.cfg.NCards,
		LastDrawnID:  g.lastDrawnID,
		HasLastDrawn: g.hasLast,
		DrawnIDs:     append([]int(nil), g.drawnIDs...),
		DealerName:   g.cfg.DealerName,
		MBits:        g.cfg.MBits,
		Encoding:     g.cfg.Encoding,
		Score:        g.score,
		LegalActions: g.LegalActions(),
	}
	return s
}

// NumActions returns the size of the action space under the configured
// ActionMode.
func (g *Game) NumActions() int {
	if g.cfg.ActionMode == "id" {
		return g.cfg.NCards
	}
	return cards.NumTypes
}

// LegalActions returns every action in the current action space; all
// guesses are always legal in this game.
func (g *Game) LegalActions() []int {
	n := g.NumActions()
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// IsOver reports whether the episode has reached its configured length.
func (g *Game) IsOver() bool {
	return g.done
}

// Payoffs returns the single-player payoff vector: total correct guesses.
func (g *Game) Payoffs() []float64 {
	return []float64{float64(g.score)}
}

// Dealer exposes the underlying dealer for diagnostics (e.g. StateSummary
// or PeekNextDistribution) between turns.
func (g *Game) Dealer() dealer.Dealer {
	return g.d
}
