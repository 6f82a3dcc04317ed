// Package pokeradapter adapts the dealer algorithms to a single standard
// 52-card deck for downstream consumers that expect a stack to pop
// cards from one at a time, the same role DealerSwapDealer plays for
// RLCard's limit hold'em dealer in the reference implementation.
package pokeradapter

import (
	"fmt"

	"onchainpoker/dealerlab/cards"
	"onchainpoker/dealerlab/dealer"
	"onchainpoker/dealerlab/rng"
)

// Deck is a single shuffled 52-card deck backed by one of the registry's
// dealer algorithms. Cards are popped off the end, matching the
// reference adapter's pop-from-end deal order.
type Deck struct {
	dealerName string
	cards      []cards.Card
}

// New shuffles a fresh single-deck Deck using dealerName (looked up in
// registry) and source, with the given dealer options.
func New(registry *dealer.Registry, dealerName string, source rng.Source, opts dealer.Options) (*Deck, error) {
	d, err := registry.Get(dealerName)
	if err != nil {
		return nil, fmt.Errorf("pokeradapter.New: %w", err)
	}
	if err := d.Reset(cards.SingleDeck, source, opts); err != nil {
		return nil, fmt.Errorf("pokeradapter.New: %w", err)
	}

	perm := make([]int, cards.SingleDeck)
	for i := range perm {
		id, err := d.Draw()
		if err != nil {
			return nil, fmt.Errorf("pokeradapter.New: drawing card %d: %w", i, err)
		}
		perm[i] = id
	}

	// Deal order pops from the end of the slice; store reversed so the
	// first card drawn by perm is the first one popped.
	dealt := make([]cards.Card, cards.SingleDeck)
	for i, id := range perm {
		dealt[cards.SingleDeck-1-i] = cards.Card(id)
	}

	return &Deck{dealerName: dealerName, cards: dealt}, nil
}

// DealCard pops and returns the top card of the deck.
func (d *Deck) DealCard() (cards.Card, error) {
	if len(d.cards) == 0 {
		return 0, fmt.Errorf("pokeradapter.DealCard: %w", dealer.ErrExhausted)
	}
	last := len(d.cards) - 1
	c := d.cards[last]
	d.cards = d.cards[:last]
	return c, nil
}

// DealCards pops n cards in deal order.
func (d *Deck) DealCards(n int) ([]cards.Card, error) {
	out := make([]cards.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.DealCard()
		if err != nil {
			return nil, fmt.Errorf("pokeradapter.DealCards: card %d/%d: %w", i, n, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// DealerName reports which dealer algorithm shuffled this deck.
func (d *Deck) DealerName() string {
	return d.dealerName
}
