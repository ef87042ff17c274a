package codec

import "github.com/bits-and-blooms/bitset"

// FilterOp is a filter comparison operator (spec §4.8).
type FilterOp int

const (
	FilterGT FilterOp = iota
	FilterLT
	FilterEQ
	FilterBetween
)

// Bitmap is a per-index selection mask built while scanning a
// dimension's values, used to drive Bytes.Filter and the patch-level
// filter operations.
//
// Reference: spec §4.8.1.
type Bitmap struct {
	npoints int
	nset    int
	bits    *bitset.BitSet
}

// NewBitmap returns a zero-initialized bitmap over npoints entries.
func NewBitmap(npoints int) *Bitmap {
	return &Bitmap{
		npoints: npoints,
		bits:    bitset.New(uint(maxInt(npoints, 1))),
	}
}

// NPoints returns the bitmap's length.
func (b *Bitmap) NPoints() int { return b.npoints }

// NSet returns the number of indices currently selected.
func (b *Bitmap) NSet() int { return b.nset }

// Get reports whether index i is selected.
func (b *Bitmap) Get(i int) bool { return b.bits.Test(uint(i)) }

// Set selects or clears index i, maintaining the running NSet count.
func (b *Bitmap) Set(i int, v bool) {
	was := b.bits.Test(uint(i))
	if v == was {
		return
	}
	if v {
		b.bits.Set(uint(i))
		b.nset++
	} else {
		b.bits.Clear(uint(i))
		b.nset--
	}
}

// MatchFilter applies op to the (i, value) pair and records the
// result into the bitmap at index i. value, v1 and v2 must be in the
// same units; the patch-level filters pass scaled (physical) values.
// For Between, v1 is assumed <= v2 (the caller swaps beforehand per
// spec §4.8).
func (b *Bitmap) MatchFilter(i int, value float64, op FilterOp, v1, v2 float64) {
	b.Set(i, matchFilter(value, op, v1, v2))
}

func matchFilter(value float64, op FilterOp, v1, v2 float64) bool {
	switch op {
	case FilterGT:
		return value > v1
	case FilterLT:
		return value < v1
	case FilterEQ:
		return value == v1
	case FilterBetween:
		return value > v1 && value < v2
	default:
		return false
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
