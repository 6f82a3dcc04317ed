package dealer

import (
	"fmt"
	"math"
	"math/bits"

	"onchainpoker/dealerlab/rng"
)

// AdaptiveThreshold deals in two phases: an adaptive-threshold rejection
// phase over d contiguous mini-decks, followed by a swap-delete tail once
// at most 2d cards remain. d is derived from the MBits option.
//
// Open-question resolution (pinned against the referenced paper's
// reference implementation): t is incremented before both the transition
// check (t > n-2d) and the threshold formula ceil(t/d)+1 are evaluated
// for the draw being served.
type AdaptiveThreshold struct {
	n        int
	numDrawn int
	source   rng.Source

	d        int
	sizes    []int
	starts   []int
	ell      []int
	t        int
	phase    string // "adaptive" or "final"
	tail     []int
	tailLive int

	mBits    int
	encoding string
}

func (d *AdaptiveThreshold) Reset(n int, source rng.Source, opts Options) error {
	if n < 1 {
		return fmt.Errorf("AdaptiveThreshold.Reset: n=%d: %w", n, ErrInvalidConfig)
	}
	d.n = n
	d.numDrawn = 0
	d.source = source
	d.mBits = opts.mBits()
	d.encoding = opts.encoding()

	mdeck := max2(1, d.mBits/8)
	if mdeck > n/2 {
		mdeck = max2(1, n/2)
	}
	if mdeck > n {
		return fmt.Errorf("AdaptiveThreshold.Reset: d=%d exceeds n=%d: %w", mdeck, n, ErrInvalidConfig)
	}
	d.d = mdeck

	base := n / mdeck
	extra := n % mdeck
	d.sizes = make([]int, mdeck)
	d.starts = make([]int, mdeck)
	offset := 0
	for i := 0; i < mdeck; i++ {
		sz := base
		if i < extra {
			sz++
		}
		d.sizes[i] = sz
		d.starts[i] = offset
		offset += sz
	}

	d.ell = make([]int, mdeck)
	d.t = 0
	d.phase = "adaptive"
	d.tail = nil
	d.tailLive = 0
	return nil
}

func (d *AdaptiveThreshold) Draw() (int, error) {
	if d.numDrawn >= d.n {
		return 0, fmt.Errorf("AdaptiveThreshold.Draw: %d/%d drawn: %w", d.numDrawn, d.n, ErrExhausted)
	}
	if d.phase == "adaptive" {
		return d.drawAdaptive()
	}
	return d.drawFinal()
}

func (d *AdaptiveThreshold) currentThreshold() int {
	if d.t == 0 {
		return 1
	}
	return int(math.Ceil(float64(d.t)/float64(d.d))) + 1
}

func (d *AdaptiveThreshold) topCard(i int) int {
	return d.starts[i] + d.ell[i]
}

func (d *AdaptiveThreshold) drawableIndices() []int {
	// The next adaptive draw increments t before computing its threshold.
	threshold := int(math.Ceil(float64(d.t+1)/float64(d.d))) + 1
	var out []int
	for i := 0; i < d.d; i++ {
		if d.ell[i] < threshold && d.ell[i] < d.sizes[i] {
			out = append(out, i)
		}
	}
	return out
}

func (d *AdaptiveThreshold) drawAdaptive() (int, error) {
	d.t++
	nAdaptive := d.n - 2*d.d
	if d.t > nAdaptive {
		d.transitionToFinal()
		return d.drawFinal()
	}

	threshold := d.currentThreshold()
	for {
		i := int(d.source.UniformInt(0, int64(d.d-1)))
		if d.ell[i] < threshold && d.ell[i] < d.sizes[i] {
			card := d.topCard(i)
			d.ell[i]++
			d.numDrawn++
			return card, nil
		}
	}
}

func (d *AdaptiveThreshold) transitionToFinal() {
	d.phase = "final"
	d.tail = d.tail[:0]
	for i := 0; i < d.d; i++ {
		start := d.starts[i] + d.ell[i]
		end := d.starts[i] + d.sizes[i]
		for cid := start; cid < end; cid++ {
			d.tail = append(d.tail, cid)
		}
	}
	d.tailLive = len(d.tail)
}

func (d *AdaptiveThreshold) drawFinal() (int, error) {
	if d.tailLive == 0 {
		return 0, fmt.Errorf("AdaptiveThreshold.drawFinal: tail exhausted unexpectedly: %w", ErrInconsistent)
	}
	i := int(d.source.UniformInt(0, int64(d.tailLive-1)))
	out := d.tail[i]
	d.tail[i] = d.tail[d.tailLive-1]
	d.tailLive--
	d.numDrawn++
	return out, nil
}

func (d *AdaptiveThreshold) Remaining() int {
	return d.n - d.numDrawn
}

func (d *AdaptiveThreshold) PeekNextDistribution() (map[int]float64, bool) {
	if d.Remaining() == 0 {
		return nil, false
	}
	if d.phase == "final" {
		if d.tailLive == 0 {
			return nil, false
		}
		prob := 1.0 / float64(d.tailLive)
		dist := make(map[int]float64, d.tailLive)
		for i := 0; i < d.tailLive; i++ {
			dist[d.tail[i]] = prob
		}
		return dist, true
	}
	if d.t+1 > d.n-2*d.d {
		// The next draw moves to the final phase and picks uniformly among
		// every card still left in the mini-decks.
		prob := 1.0 / float64(d.Remaining())
		dist := make(map[int]float64, d.Remaining())
		for i := 0; i < d.d; i++ {
			for cid := d.topCard(i); cid < d.starts[i]+d.sizes[i]; cid++ {
				dist[cid] = prob
			}
		}
		return dist, true
	}
	drawable := d.drawableIndices()
	if len(drawable) == 0 {
		return nil, false
	}
	prob := 1.0 / float64(len(drawable))
	dist := make(map[int]float64, len(drawable))
	for _, i := range drawable {
		dist[d.topCard(i)] = prob
	}
	return dist, true
}

// PeekDrawableOptions exposes PeekNextDistribution as (card id,
// probability) pairs: the drawable mini-deck tops while the next draw is
// adaptive, the remaining tail cards once it is a final-phase draw.
// Matches the original's peek_drawable_options helper used by tests and
// diagnostic scripts.
func (d *AdaptiveThreshold) PeekDrawableOptions() []struct {
	CardID      int
	Probability float64
} {
	dist, ok := d.PeekNextDistribution()
	if !ok {
		return nil
	}
	out := make([]struct {
		CardID      int
		Probability float64
	}, 0, len(dist))
	for id, p := range dist {
		out = append(out, struct {
			CardID      int
			Probability float64
		}{id, p})
	}
	return out
}

func (d *AdaptiveThreshold) StateSummary() StateSummary {
	var theoryBits int
	if d.encoding == "holes_elias_doc" {
		threshold := d.currentThreshold()
		total := 0
		for i := 0; i < d.d; i++ {
			if d.ell[i] < d.sizes[i] {
				total += eliasGammaBitsOf(threshold - d.ell[i])
			}
		}
		theoryBits = total + d.d*2
	} else {
		bitsPerEll := max2(1, bits.Len(uint(max2(d.n-1, 1))))
		theoryBits = d.d * bitsPerEll
	}

	memBytes := len(d.ell)*8 + len(d.sizes)*8 + len(d.starts)*8 + len(d.tail)*8

	return StateSummary{
		Algorithm:       "adaptive",
		N:               d.n,
		Drawn:           d.numDrawn,
		Remaining:       d.Remaining(),
		TheoreticalBits: theoryBits,
		MemoryBytes:     memBytes,
		Extra: map[string]any{
			"d":        d.d,
			"m_bits":   d.mBits,
			"encoding": d.encoding,
			"phase":    d.phase,
			"t":        d.t,
		},
	}
}

// eliasGammaBitsOf returns the bit-length of the Elias-gamma encoding of
// x+1 (x >= 0): 2*floor(log2(x+1)) + 1. Used only for theoretical bit
// accounting under "holes_elias_doc"; draw behavior is unaffected.
func eliasGammaBitsOf(x int) int {
	val := x + 1
	if val < 1 {
		return 1
	}
	return 2*floorLog2(val) + 1
}

func floorLog2(v int) int {
	if v < 1 {
		return 0
	}
	return bits.Len(uint(v)) - 1
}
