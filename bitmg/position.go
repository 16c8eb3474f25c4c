package bitmg

import "github.com/pkg/errors"

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind. It indexes Position's per-type bitboards.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King

	// NoPieceType marks "no capture" / "no promotion" in packed moves.
	NoPieceType PieceType = 7
)

const numPieceTypes = 6

var pieceLetters = [8]byte{'p', 'n', 'b', 'r', 'q', 'k', '?', '-'}

// Letter returns the lower-case piece letter.
func (pt PieceType) Letter() byte { return pieceLetters[pt&7] }

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// ErrInconsistentPosition is returned by Position.Validate when the bitboard
// families disagree.
var ErrInconsistentPosition = errors.New("inconsistent position")

// Position is the piece placement: the empty squares, each color's occupancy
// and one color-independent bitboard per piece type.
//
// The zero value is not a valid position (every square would be neither empty
// nor occupied); use NewPosition or Board.
type Position struct {
	empty      Bitboard
	allPieces  [2]Bitboard
	individual [numPieceTypes]Bitboard
}

// NewPosition returns an empty board.
func NewPosition() Position {
	return Position{empty: ^Bitboard(0)}
}

// Empty returns the empty squares.
func (p *Position) Empty() Bitboard { return p.empty }

// Occupancy returns every occupied square.
func (p *Position) Occupancy() Bitboard { return p.allPieces[White] | p.allPieces[Black] }

// Colors returns the squares occupied by c.
func (p *Position) Colors(c Color) Bitboard { return p.allPieces[c&1] }

// Pieces returns every piece of type pt, of either color.
func (p *Position) Pieces(pt PieceType) Bitboard {
	if pt >= numPieceTypes {
		return 0
	}
	return p.individual[pt]
}

// PiecesOf returns c's pieces of type pt.
func (p *Position) PiecesOf(c Color, pt PieceType) Bitboard {
	return p.Pieces(pt) & p.allPieces[c&1]
}

// KingSquare returns c's king square, or NoSquare without a king.
func (p *Position) KingSquare(c Color) Square {
	return p.PiecesOf(c, King).LowestSquare()
}

// PieceAt returns the occupant of sq. It does not check consistency; see
// Snapshot for that.
func (p *Position) PieceAt(sq Square) (Color, PieceType, bool) {
	b := SquareBB(sq)
	if b == 0 || p.empty&b != 0 {
		return White, NoPieceType, false
	}
	c := White
	if p.allPieces[Black]&b != 0 {
		c = Black
	}
	for pt := Pawn; pt < numPieceTypes; pt++ {
		if p.individual[pt]&b != 0 {
			return c, pt, true
		}
	}
	return c, NoPieceType, false
}

// Put places a piece on an empty square.
func (p *Position) Put(c Color, pt PieceType, sq Square) {
	b := SquareBB(sq)
	p.allPieces[c] |= b
	p.individual[pt] |= b
	p.empty &^= b
}

// Remove takes a piece off sq.
func (p *Position) Remove(c Color, pt PieceType, sq Square) {
	b := SquareBB(sq)
	p.allPieces[c] &^= b
	p.individual[pt] &^= b
	p.empty |= b
}

// MovePiece relocates a piece from one square to an empty one.
func (p *Position) MovePiece(c Color, pt PieceType, from, to Square) {
	fromTo := SquareBB(from) | SquareBB(to)
	p.allPieces[c] ^= fromTo
	p.individual[pt] ^= fromTo
	p.empty ^= fromTo
}

// Attackers returns every piece of color by attacking sq, given occupancy occ.
func (p *Position) Attackers(sq Square, by Color, occ Bitboard) Bitboard {
	them := p.allPieces[by&1]
	rq := p.individual[Rook] | p.individual[Queen]
	bq := p.individual[Bishop] | p.individual[Queen]
	att := PawnAttacks(by.Other(), sq) & p.individual[Pawn]
	att |= KnightAttacks(sq) & p.individual[Knight]
	att |= KingAttacks(sq) & p.individual[King]
	att |= RookAttacks(sq, occ) & rq
	att |= BishopAttacks(sq, occ) & bq
	return att & them
}

// Attacked reports whether sq is attacked by color by.
func (p *Position) Attacked(sq Square, by Color) bool {
	return p.Attackers(sq, by, p.Occupancy()) != 0
}

// Validate checks the placement invariants and returns ErrInconsistentPosition
// wrapped with the first offending square.
func (p *Position) Validate() error {
	occ := p.Occupancy()
	if p.allPieces[White]&p.allPieces[Black] != 0 {
		sq := (p.allPieces[White] & p.allPieces[Black]).LowestSquare()
		return errors.Wrapf(ErrInconsistentPosition, "%v occupied by both colors", sq)
	}
	if p.empty != ^occ {
		sq := (p.empty ^ ^occ).LowestSquare()
		return errors.Wrapf(ErrInconsistentPosition, "%v empty and occupied disagree", sq)
	}
	var union Bitboard
	for pt := Pawn; pt < numPieceTypes; pt++ {
		if clash := union & p.individual[pt]; clash != 0 {
			return errors.Wrapf(ErrInconsistentPosition, "%v holds more than one piece type", clash.LowestSquare())
		}
		union |= p.individual[pt]
	}
	if union != occ {
		sq := (union ^ occ).LowestSquare()
		return errors.Wrapf(ErrInconsistentPosition, "%v has a color but no piece type (or the reverse)", sq)
	}
	return nil
}
