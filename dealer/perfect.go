package dealer

import (
	"fmt"
	"math/bits"

	"onchainpoker/dealerlab/rng"
)

// Perfect deals via the cells/population-intervals construction (n <= 256,
// cell width w <= 8): elements are partitioned into ceil(n/w) w-bit cell
// masks, cells are kept sorted into contiguous population intervals, and
// each draw does population sampling (prefix-sum over interval sizes),
// cell sampling within the chosen interval, and bit selection within the
// chosen cell's mask. Close to the optimal O(n) bits of state.
type Perfect struct {
	n        int
	numDrawn int
	source   rng.Source

	w        int
	numCells int
	cells    []perfectCell

	intervalBegin []int
	intervalSize  []int
}

type perfectCell struct {
	mask uint64
	base int
}

func (c perfectCell) pop() int {
	return bits.OnesCount64(c.mask)
}

func (d *Perfect) Reset(n int, source rng.Source, _ Options) error {
	if n < 1 {
		return fmt.Errorf("Perfect.Reset: n=%d: %w", n, ErrInvalidConfig)
	}
	if n > 256 {
		return fmt.Errorf("Perfect.Reset: n=%d exceeds the w<=8 cell-width ceiling of 256: %w", n, ErrInvalidConfig)
	}
	d.n = n
	d.numDrawn = 0
	d.source = source

	w := ceilLog2(max2(n, 2))
	if w < 1 {
		w = 1
	}
	d.w = w
	numCells := (n + w - 1) / w
	d.numCells = numCells

	d.cells = make([]perfectCell, numCells)
	for j := 0; j < numCells; j++ {
		base := j * w
		valid := w
		if n-base < valid {
			valid = n - base
		}
		var mask uint64
		if valid >= 64 {
			mask = ^uint64(0)
		} else {
			mask = (uint64(1) << uint(valid)) - 1
		}
		d.cells[j] = perfectCell{mask: mask, base: base}
	}

	popCount := make([]int, w+1)
	for _, c := range d.cells {
		popCount[c.pop()]++
	}

	d.intervalBegin = make([]int, w+1)
	d.intervalSize = make([]int, w+1)
	offset := 0
	for p := 0; p <= w; p++ {
		d.intervalBegin[p] = offset
		d.intervalSize[p] = popCount[p]
		offset += popCount[p]
	}

	// Stably group cells by population into contiguous intervals, matching
	// the begin/size bookkeeping above.
	sorted := make([]perfectCell, numCells)
	cursor := make([]int, w+1)
	copy(cursor, d.intervalBegin)
	for _, c := range d.cells {
		p := c.pop()
		sorted[cursor[p]] = c
		cursor[p]++
	}
	d.cells = sorted

	return nil
}

func ceilLog2(v int) int {
	if v <= 1 {
		return 0
	}
	return bits.Len(uint(v - 1))
}

func (d *Perfect) Draw() (int, error) {
	if d.numDrawn >= d.n {
		return 0, fmt.Errorf("Perfect.Draw: %d/%d drawn: %w", d.numDrawn, d.n, ErrExhausted)
	}

	total := int64(0)
	for p := 1; p <= d.w; p++ {
		total += int64(p) * int64(d.intervalSize[p])
	}
	if total == 0 {
		return 0, fmt.Errorf("Perfect.Draw: no drawable cells with %d/%d drawn: %w", d.numDrawn, d.n, ErrInconsistent)
	}

	r := d.source.UniformInt(0, total-1)
	chosenPop := 0
	var cumul int64
	for p := 1; p <= d.w; p++ {
		cumul += int64(p) * int64(d.intervalSize[p])
		if r < cumul {
			chosenPop = p
			break
		}
	}
	if chosenPop == 0 {
		return 0, fmt.Errorf("Perfect.Draw: population scan failed to select: %w", ErrInconsistent)
	}

	isize := d.intervalSize[chosenPop]
	loc := int(d.source.UniformInt(0, int64(isize-1)))
	cellIdx := d.intervalBegin[chosenPop] + loc
	cell := d.cells[cellIdx]

	bitR := int(d.source.UniformInt(0, int64(chosenPop-1)))
	bitPos, ok := selectBit(cell.mask, bitR)
	if !ok {
		return 0, fmt.Errorf("Perfect.Draw: mask has fewer than %d set bits: %w", bitR+1, ErrInconsistent)
	}
	elementID := cell.base + bitPos

	cell.mask &^= uint64(1) << uint(bitPos)
	d.cells[cellIdx] = cell

	d.decrementCellPopulation(cellIdx, chosenPop)

	d.numDrawn++
	return elementID, nil
}

// selectBit returns the position of the r-th (0-based) set bit in mask via
// broadword select: bits.TrailingZeros after clearing the lowest r set
// bits with x &= x-1.
func selectBit(mask uint64, r int) (int, bool) {
	for i := 0; i < r; i++ {
		if mask == 0 {
			return 0, false
		}
		mask &= mask - 1
	}
	if mask == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(mask), true
}

// decrementCellPopulation implements Algorithm A.2: move the cell at
// cellIdx from the oldPop interval into the oldPop-1 interval by swapping
// it to the first slot of its current interval, then shrinking that
// interval from the left and growing the adjacent one to the right.
func (d *Perfect) decrementCellPopulation(cellIdx, oldPop int) {
	newPop := oldPop - 1
	firstInInterval := d.intervalBegin[oldPop]
	if cellIdx != firstInInterval {
		d.cells[cellIdx], d.cells[firstInInterval] = d.cells[firstInInterval], d.cells[cellIdx]
	}
	d.intervalBegin[oldPop]++
	d.intervalSize[oldPop]--
	d.intervalSize[newPop]++
}

func (d *Perfect) Remaining() int {
	return d.n - d.numDrawn
}

func (d *Perfect) PeekNextDistribution() (map[int]float64, bool) {
	rem := d.Remaining()
	if rem == 0 {
		return nil, false
	}
	prob := 1.0 / float64(rem)
	dist := make(map[int]float64, rem)
	for _, c := range d.cells {
		mask := c.mask
		for mask != 0 {
			pos := bits.TrailingZeros64(mask)
			dist[c.base+pos] = prob
			mask &= mask - 1
		}
	}
	return dist, true
}

func (d *Perfect) StateSummary() StateSummary {
	theoryBits := d.numCells * d.w
	memBytes := len(d.cells)*16 + len(d.intervalBegin)*8 + len(d.intervalSize)*8
	return StateSummary{
		Algorithm:       "perfect",
		N:               d.n,
		Drawn:           d.numDrawn,
		Remaining:       d.Remaining(),
		TheoreticalBits: theoryBits,
		MemoryBytes:     memBytes,
		Extra: map[string]any{
			"w":         d.w,
			"num_cells": d.numCells,
		},
	}
}
