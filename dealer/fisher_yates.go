package dealer

import (
	"fmt"
	"math/bits"

	"onchainpoker/dealerlab/rng"
)

// FisherYates deals via classic swap-delete (one Fisher-Yates step per draw):
// O(1) per draw, O(n) total memory.
type FisherYates struct {
	n        int
	numDrawn int
	source   rng.Source
	array    []int
	live     int // length of the live prefix of array
}

func (d *FisherYates) Reset(n int, source rng.Source, _ Options) error {
	if n < 1 {
		return fmt.Errorf("FisherYates.Reset: n=%d: %w", n, ErrInvalidConfig)
	}
	d.n = n
	d.numDrawn = 0
	d.source = source
	d.array = make([]int, n)
	for i := range d.array {
		d.array[i] = i
	}
	d.live = n
	return nil
}

func (d *FisherYates) Draw() (int, error) {
	if d.numDrawn >= d.n {
		return 0, fmt.Errorf("FisherYates.Draw: %d/%d drawn: %w", d.numDrawn, d.n, ErrExhausted)
	}
	i := int(d.source.UniformInt(0, int64(d.live-1)))
	out := d.array[i]
	d.array[i] = d.array[d.live-1]
	d.live--
	d.numDrawn++
	return out, nil
}

func (d *FisherYates) Remaining() int {
	return d.live
}

func (d *FisherYates) PeekNextDistribution() (map[int]float64, bool) {
	if d.live == 0 {
		return nil, false
	}
	prob := 1.0 / float64(d.live)
	dist := make(map[int]float64, d.live)
	for i := 0; i < d.live; i++ {
		dist[d.array[i]] = prob
	}
	return dist, true
}

func (d *FisherYates) StateSummary() StateSummary {
	bitsPerElem := bits.Len(uint(max2(d.n-1, 1)))
	if bitsPerElem < 1 {
		bitsPerElem = 1
	}
	return StateSummary{
		Algorithm:       "fisher_yates",
		N:               d.n,
		Drawn:           d.numDrawn,
		Remaining:       d.Remaining(),
		TheoreticalBits: d.n * bitsPerElem,
		MemoryBytes:     len(d.array) * 8,
	}
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}
