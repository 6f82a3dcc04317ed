package dealer

import (
	"fmt"

	"onchainpoker/dealerlab/rng"
)

// Bitmap deals by rejection sampling against a packed-bit availability
// vector. Expected trials per draw grow as the deck thins (O(n) in the
// worst case for the last card), which is fine for n up to roughly 128
// but not beyond.
type Bitmap struct {
	n        int
	numDrawn int
	source   rng.Source
	words    []uint64 // packed availability bits, one bit per element
}

const wordBits = 64

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

func (d *Bitmap) Reset(n int, source rng.Source, _ Options) error {
	if n < 1 {
		return fmt.Errorf("Bitmap.Reset: n=%d: %w", n, ErrInvalidConfig)
	}
	d.n = n
	d.numDrawn = 0
	d.source = source
	d.words = make([]uint64, wordsFor(n))
	for i := 0; i < n; i++ {
		d.setBit(i)
	}
	return nil
}

func (d *Bitmap) setBit(i int)   { d.words[i/wordBits] |= 1 << uint(i%wordBits) }
func (d *Bitmap) clearBit(i int) { d.words[i/wordBits] &^= 1 << uint(i%wordBits) }
func (d *Bitmap) isSet(i int) bool {
	return d.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

func (d *Bitmap) Draw() (int, error) {
	if d.numDrawn >= d.n {
		return 0, fmt.Errorf("Bitmap.Draw: %d/%d drawn: %w", d.numDrawn, d.n, ErrExhausted)
	}
	for {
		c := int(d.source.UniformInt(0, int64(d.n-1)))
		if d.isSet(c) {
			d.clearBit(c)
			d.numDrawn++
			return c, nil
		}
	}
}

func (d *Bitmap) Remaining() int {
	return d.n - d.numDrawn
}

func (d *Bitmap) PeekNextDistribution() (map[int]float64, bool) {
	rem := d.Remaining()
	if rem == 0 {
		return nil, false
	}
	prob := 1.0 / float64(rem)
	dist := make(map[int]float64, rem)
	for i := 0; i < d.n; i++ {
		if d.isSet(i) {
			dist[i] = prob
		}
	}
	return dist, true
}

func (d *Bitmap) StateSummary() StateSummary {
	return StateSummary{
		Algorithm:       "bitmap",
		N:               d.n,
		Drawn:           d.numDrawn,
		Remaining:       d.Remaining(),
		TheoreticalBits: d.n,
		MemoryBytes:     len(d.words) * 8,
	}
}
