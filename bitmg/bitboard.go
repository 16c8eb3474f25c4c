package bitmg

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i set for square i.
type Bitboard uint64

// SquareBB returns a bitboard with only sq set. Non-board squares give 0.
func SquareBB(sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return Bitboard(1) << sq
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LowestSquare returns the lowest set square, or NoSquare when b is empty.
func (b Bitboard) LowestSquare() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLowest removes and returns the lowest set square.
func (b *Bitboard) PopLowest() Square {
	sq := b.LowestSquare()
	*b &= *b - 1
	return sq
}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&SquareBB(sq) != 0 }

// Squares lists the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for b != 0 {
		out = append(out, b.PopLowest())
	}
	return out
}

// String draws the set as an 8x8 grid, rank 8 on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		for f := 0; f < 8; f++ {
			if b.Has(SquareAt(f, r)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Scatter deposits the low PopCount(mask) bits of source onto the set bits of
// mask, lowest first (software pdep). Iterating source over
// 0..2^PopCount(mask)-1 enumerates every subset of mask.
func Scatter(source uint64, mask Bitboard) Bitboard {
	var res Bitboard
	m := mask
	for idx := uint(0); m != 0; idx++ {
		lsb := m & -m
		if (source>>idx)&1 != 0 {
			res |= lsb
		}
		m &= m - 1
	}
	return res
}

// Gather extracts the bits of b under mask and packs them into the low bits
// (software pext). Gather(Scatter(v, m), m) == v for v < 2^PopCount(m).
func Gather(b Bitboard, mask Bitboard) uint64 {
	var res uint64
	m := mask
	for idx := uint(0); m != 0; idx++ {
		lsb := m & -m
		if b&lsb != 0 {
			res |= 1 << idx
		}
		m &= m - 1
	}
	return res
}
