package dealer

import (
	"math/bits"
	"testing"

	"onchainpoker/dealerlab/rng"
)

func TestPerfect_CellLayoutForSevenElements(t *testing.T) {
	d := &Perfect{}
	if err := d.Reset(7, rng.NewHashStreamFromInt64(0), Options{}); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if d.w != 3 {
		t.Fatalf("w = %d, want 3", d.w)
	}
	if d.numCells != 3 {
		t.Fatalf("numCells = %d, want 3", d.numCells)
	}
	pops := make([]int, 0, 3)
	for _, c := range d.cells {
		pops = append(pops, c.pop())
	}
	counts := map[int]int{}
	for _, p := range pops {
		counts[p]++
	}
	if counts[3] != 2 || counts[1] != 1 {
		t.Fatalf("population counts = %v, want two cells of population 3 and one of population 1", counts)
	}
}

func TestPerfect_IntervalInvariantHoldsAfterEveryDraw(t *testing.T) {
	d := &Perfect{}
	n := 104
	if err := d.Reset(n, rng.NewHashStreamFromInt64(17), Options{}); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d error: %v", i, err)
		}

		var weighted int64
		for p := 1; p <= d.w; p++ {
			weighted += int64(p) * int64(d.intervalSize[p])
		}
		if weighted != int64(d.Remaining()) {
			t.Fatalf("draw %d: sum(p*interval_size[p]) = %d, want remaining = %d", i, weighted, d.Remaining())
		}

		var totalPop int
		for _, c := range d.cells {
			totalPop += bits.OnesCount64(c.mask)
		}
		if totalPop != d.Remaining() {
			t.Fatalf("draw %d: total popcount = %d, want remaining = %d", i, totalPop, d.Remaining())
		}
	}
}
