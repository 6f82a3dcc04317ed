// Package cards provides card-identifier helpers for the one- and
// two-deck conventions the dealer algorithms and ShuffleGuessGame use.
//
// Adapted from the teacher's internal/state.Card, which hard-codes a
// single 52-card deck (card_id == type_id); here the deck_index/type_id
// split generalizes that to the double-deck case the shuffle-guess game
// defaults to.
package cards

// NumTypes is the number of distinct card types in one standard deck.
const NumTypes = 52

// SingleDeck and DoubleDeck are the two deck sizes spec.md calls out as
// the practical range for n; any n >= 2 is still accepted by the dealers.
const (
	SingleDeck = 52
	DoubleDeck = 104
)

var suits = [4]byte{'S', 'H', 'D', 'C'}
var ranks = [13]byte{'A', '2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K'}

// Card is a single-deck card id in [0, NumTypes), the same representation
// the teacher's internal/state.Card uses for its one-deck table games.
type Card int

// Rank returns the card's rank index in [0, 13).
func (c Card) Rank() int { return Rank(int(c)) }

// Suit returns the card's suit index in [0, 4).
func (c Card) Suit() int { return Suit(int(c)) }

// String renders the card as e.g. "AS".
func (c Card) String() string {
	return string([]byte{ranks[c.Rank()], suits[c.Suit()]})
}

// DeckIndex returns which physical deck a card id belongs to: 0 for the
// first deck, 1 for the second, and so on.
func DeckIndex(id int) int {
	return id / NumTypes
}

// TypeID returns the card's type in [0, 52), invariant across decks.
func TypeID(id int) int {
	return id % NumTypes
}

// Suit returns the suit index in [0, 4) for a type id.
func Suit(typeID int) int {
	return typeID / 13
}

// Rank returns the rank index in [0, 13) for a type id.
func Rank(typeID int) int {
	return typeID % 13
}

// Pretty renders a card id as a short human-readable string, e.g. "AS(d0)".
func Pretty(id int) string {
	t := TypeID(id)
	d := DeckIndex(id)
	out := make([]byte, 0, 8)
	out = append(out, ranks[Rank(t)], suits[Suit(t)])
	out = append(out, '(', 'd')
	out = appendInt(out, d)
	out = append(out, ')')
	return string(out)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
