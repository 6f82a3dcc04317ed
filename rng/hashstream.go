package rng

import (
	"crypto/sha256"
	"encoding/binary"
)

// domainSep mirrors the length-prefixed domain-separation convention the
// teacher's ocpcrypto.HashToScalar uses for its transcript hashing, applied
// here to a plain byte stream instead of a curve scalar.
const domainSep = "dealerlab/v1/rng/hashstream"

// HashStream is a deterministic pseudo-random source driven by
// sha256(domainSep || seed || counter), generalizing the
// sha256(seed||counter) construction the teacher used once, ad hoc, in
// state.DeterministicDeck. Two HashStreams built with the same seed and
// driven through the same call sequence produce identical output.
//
// It is a statistical generator only — nothing here claims cryptographic
// unpredictability, consistent with this library's scope.
type HashStream struct {
	seed    []byte
	counter uint64
}

// NewHashStream returns a HashStream seeded from an arbitrary byte string.
func NewHashStream(seed []byte) *HashStream {
	cp := make([]byte, len(seed))
	copy(cp, seed)
	return &HashStream{seed: cp}
}

// NewHashStreamFromInt64 is a convenience constructor for integer seeds,
// the common case in tests and benchmarks ("seed = 42").
func NewHashStreamFromInt64(seed int64) *HashStream {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(seed))
	return NewHashStream(b)
}

func (h *HashStream) nextBlock() [32]byte {
	buf := make([]byte, 0, len(domainSep)+4+len(h.seed)+4+8)
	buf = appendLenPrefixed(buf, []byte(domainSep))
	buf = appendLenPrefixed(buf, h.seed)
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], h.counter)
	buf = appendLenPrefixed(buf, ctr[:])
	h.counter++
	return sha256.Sum256(buf)
}

func appendLenPrefixed(buf, b []byte) []byte {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(b)))
	buf = append(buf, l[:]...)
	buf = append(buf, b...)
	return buf
}

func (h *HashStream) nextUint64() uint64 {
	block := h.nextBlock()
	return binary.LittleEndian.Uint64(block[:8])
}

// UniformInt returns a uniformly distributed integer in [lo, hiInclusive].
// It rejection-samples on the smallest power-of-two range covering the
// span, per the Design Notes' instruction to avoid biased modulo
// reductions — an improvement on DeterministicDeck's plain '%' reduction,
// which this generalizes.
func (h *HashStream) UniformInt(lo, hiInclusive int64) int64 {
	if hiInclusive < lo {
		panic("rng: hiInclusive < lo")
	}
	span := uint64(hiInclusive-lo) + 1
	if span == 0 {
		// span overflowed uint64 (full 64-bit range requested); any value works.
		return lo + int64(h.nextUint64())
	}
	mask := bitmaskCovering(span)
	for {
		v := h.nextUint64() & mask
		if v < span {
			return lo + int64(v)
		}
	}
}

// bitmaskCovering returns the smallest (2^k - 1) mask with 2^k >= span.
func bitmaskCovering(span uint64) uint64 {
	if span == 0 {
		return ^uint64(0)
	}
	mask := span - 1
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	mask |= mask >> 32
	return mask
}
