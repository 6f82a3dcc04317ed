package dealer

import (
	"testing"

	"onchainpoker/dealerlab/rng"
)

func TestAdaptiveThreshold_MiniDeckLayoutForDefaultMBits(t *testing.T) {
	d := &AdaptiveThreshold{}
	if err := d.Reset(104, rng.NewHashStreamFromInt64(0), Options{MBits: 64}); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if d.d != 8 {
		t.Fatalf("d = %d, want 8", d.d)
	}
	wantStarts := []int{0, 13, 26, 39, 52, 65, 78, 91}
	if len(d.starts) != len(wantStarts) {
		t.Fatalf("starts = %v, want %v", d.starts, wantStarts)
	}
	for i, want := range wantStarts {
		if d.starts[i] != want {
			t.Errorf("starts[%d] = %d, want %d", i, d.starts[i], want)
		}
		if d.sizes[i] != 13 {
			t.Errorf("sizes[%d] = %d, want 13", i, d.sizes[i])
		}
	}
}

func TestAdaptiveThreshold_FirstDrawIsAMiniDeckTop(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		d := &AdaptiveThreshold{}
		if err := d.Reset(104, rng.NewHashStreamFromInt64(seed), Options{MBits: 64}); err != nil {
			t.Fatalf("seed %d: Reset error: %v", seed, err)
		}
		starts := map[int]bool{}
		for _, s := range d.starts {
			starts[s] = true
		}
		first, err := d.Draw()
		if err != nil {
			t.Fatalf("seed %d: Draw error: %v", seed, err)
		}
		if !starts[first] {
			t.Fatalf("seed %d: first draw %d not a mini-deck top in %v", seed, first, d.starts)
		}
	}
}

func TestAdaptiveThreshold_PeekDrawableOptionsCoversSubsequentDraw(t *testing.T) {
	d := &AdaptiveThreshold{}
	if err := d.Reset(104, rng.NewHashStreamFromInt64(3), Options{MBits: 64}); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	for i := 0; i < 90; i++ {
		options := d.PeekDrawableOptions()
		if len(options) == 0 {
			t.Fatalf("step %d: no drawable options while dealer has cards remaining", i)
		}
		sum := 0.0
		support := map[int]bool{}
		for _, o := range options {
			sum += o.Probability
			support[o.CardID] = true
		}
		if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("step %d: drawable-options probabilities sum to %.9f, want 1.0", i, sum)
		}
		drawn, err := d.Draw()
		if err != nil {
			t.Fatalf("step %d: Draw error: %v", i, err)
		}
		if d.phase == "adaptive" && !support[drawn] {
			t.Fatalf("step %d: drawn id %d missing from peeked drawable options %v", i, drawn, options)
		}
	}
}

func TestAdaptiveThreshold_ClampsDToHalfN(t *testing.T) {
	d := &AdaptiveThreshold{}
	// m_bits=400 -> requested d=50 > n/2; this exercises the n//2 clamp
	// path instead of an outright rejection.
	if err := d.Reset(3, rng.NewHashStreamFromInt64(0), Options{MBits: 400}); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if d.d > 1 {
		t.Fatalf("d = %d, want clamp to <= n/2 = 1", d.d)
	}
}
