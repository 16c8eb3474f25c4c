package bitmg

import "strings"

// SquareState classifies one square of a Snapshot.
type SquareState uint8

const (
	SquareEmpty SquareState = iota
	SquareOccupied
	// SquareInconsistent means the bitboard families disagree about the
	// square: no piece type, several piece types, both colors, or a color /
	// empty mismatch.
	SquareInconsistent
)

// SquareContent is what a Snapshot holds for one square.
type SquareContent struct {
	State SquareState
	Color Color
	Piece PieceType
}

// Symbol returns the FEN letter of the occupant, '.' for empty and '!' for an
// inconsistent square.
func (sc SquareContent) Symbol() byte {
	switch sc.State {
	case SquareEmpty:
		return '.'
	case SquareInconsistent:
		return '!'
	}
	ch := sc.Piece.Letter()
	if sc.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// Snapshot is a read-only per-square view of a Position.
type Snapshot [64]SquareContent

// Snapshot derives the piece on every square from the empty, color and piece
// type bitboards without trusting any one of them.
func (p *Position) Snapshot() Snapshot {
	var s Snapshot
	for sq := Square(0); sq < 64; sq++ {
		bb := SquareBB(sq)
		inEmpty := p.empty&bb != 0
		inWhite := p.allPieces[White]&bb != 0
		inBlack := p.allPieces[Black]&bb != 0

		types := 0
		pt := NoPieceType
		for t := Pawn; t < numPieceTypes; t++ {
			if p.individual[t]&bb != 0 {
				types++
				pt = t
			}
		}

		switch {
		case inEmpty && !inWhite && !inBlack && types == 0:
			s[sq] = SquareContent{State: SquareEmpty, Piece: NoPieceType}
		case !inEmpty && inWhite != inBlack && types == 1:
			c := White
			if inBlack {
				c = Black
			}
			s[sq] = SquareContent{State: SquareOccupied, Color: c, Piece: pt}
		default:
			s[sq] = SquareContent{State: SquareInconsistent, Piece: NoPieceType}
		}
	}
	return s
}

// Consistent reports whether no square is SquareInconsistent.
func (s *Snapshot) Consistent() bool {
	for _, sc := range s {
		if sc.State == SquareInconsistent {
			return false
		}
	}
	return true
}

// String renders the snapshot as an 8x8 grid, rank 8 first, with file and
// rank labels.
func (s *Snapshot) String() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.WriteByte('1' + byte(r))
		sb.WriteByte(' ')
		for f := 0; f < 8; f++ {
			sb.WriteByte(s[SquareAt(f, r)].Symbol())
			if f < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
