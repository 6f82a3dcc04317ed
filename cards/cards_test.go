package cards

import "testing"

func TestDeckIndexAndTypeID(t *testing.T) {
	cases := []struct {
		id       int
		wantDeck int
		wantType int
	}{
		{0, 0, 0},
		{51, 0, 51},
		{52, 1, 0},
		{103, 1, 51},
		{104, 2, 0},
	}
	for _, c := range cases {
		if got := DeckIndex(c.id); got != c.wantDeck {
			t.Errorf("DeckIndex(%d) = %d, want %d", c.id, got, c.wantDeck)
		}
		if got := TypeID(c.id); got != c.wantType {
			t.Errorf("TypeID(%d) = %d, want %d", c.id, got, c.wantType)
		}
	}
}

func TestSuitAndRank(t *testing.T) {
	for typeID := 0; typeID < NumTypes; typeID++ {
		suit := Suit(typeID)
		rank := Rank(typeID)
		if suit < 0 || suit > 3 {
			t.Fatalf("Suit(%d) = %d out of range", typeID, suit)
		}
		if rank < 0 || rank > 12 {
			t.Fatalf("Rank(%d) = %d out of range", typeID, rank)
		}
		if suit*13+rank != typeID {
			t.Fatalf("Suit/Rank roundtrip failed for typeID=%d: suit=%d rank=%d", typeID, suit, rank)
		}
	}
}

func TestCard_String(t *testing.T) {
	c := Card(0)
	if got := c.String(); got != "AS" {
		t.Errorf("Card(0).String() = %q, want %q", got, "AS")
	}
	last := Card(NumTypes - 1)
	if got := last.String(); got != "KC" {
		t.Errorf("Card(51).String() = %q, want %q", got, "KC")
	}
}

func TestPretty_NoDuplicatesAcrossDoubleDeck(t *testing.T) {
	seen := make(map[string]bool)
	for id := 0; id < DoubleDeck; id++ {
		p := Pretty(id)
		if seen[p] {
			t.Fatalf("duplicate pretty string %q at id=%d", p, id)
		}
		seen[p] = true
	}
}
