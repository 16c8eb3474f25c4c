package bitmg

import "github.com/pkg/errors"

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square uint8

const (
	// NoSquare is returned by LowestSquare for an empty bitboard and marks the
	// end of a MoveList. It never indexes a table.
	NoSquare Square = 64
	// OffBoard is what Neighbor returns for a step that leaves the board.
	OffBoard Square = 65
)

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Rank returns 0..7 for real squares.
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns 0..7 for real squares.
func (sq Square) File() int { return int(sq) % 8 }

// Valid reports whether sq is one of the 64 board squares.
func (sq Square) Valid() bool { return sq < 64 }

// SquareAt builds a square from file and rank (both 0..7).
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) String() string {
	switch {
	case sq == NoSquare:
		return "-"
	case sq == OffBoard:
		return "off"
	case !sq.Valid():
		return "?"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts "e4" style coordinates into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, errors.Errorf("bad square %q", s)
	}
	f := int(s[0]) - 'a'
	r := int(s[1]) - '1'
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, errors.Errorf("bad square %q", s)
	}
	return SquareAt(f, r), nil
}

// Direction is one of the 8 compass rays or one of the 8 knight leaps.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// Knight leaps, named by the long leg first.
	NorthNorthEast
	EastNorthEast
	EastSouthEast
	SouthSouthEast
	SouthSouthWest
	WestSouthWest
	WestNorthWest
	NorthNorthWest

	numDirections
)

var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	kingDirections   = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
	knightDirections = [8]Direction{
		NorthNorthEast, EastNorthEast, EastSouthEast, SouthSouthEast,
		SouthSouthWest, WestSouthWest, WestNorthWest, NorthNorthWest,
	}
)

// file and rank deltas per direction
var directionDelta = [numDirections][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},

	NorthNorthEast: {1, 2},
	EastNorthEast:  {2, 1},
	EastSouthEast:  {2, -1},
	SouthSouthEast: {1, -2},
	SouthSouthWest: {-1, -2},
	WestSouthWest:  {-2, -1},
	WestNorthWest:  {-2, 1},
	NorthNorthWest: {-1, 2},
}

var neighbors = newNeighborTable()

func newNeighborTable() *[64][numDirections]Square {
	var t [64][numDirections]Square
	for sq := Square(0); sq < 64; sq++ {
		for d := Direction(0); d < numDirections; d++ {
			f := sq.File() + directionDelta[d][0]
			r := sq.Rank() + directionDelta[d][1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				t[sq][d] = OffBoard
				continue
			}
			t[sq][d] = SquareAt(f, r)
		}
	}
	return &t
}

// Neighbor returns the square one step from sq in direction d, or OffBoard.
// Stepping from OffBoard (or NoSquare) stays OffBoard.
func Neighbor(sq Square, d Direction) Square {
	if !sq.Valid() || d >= numDirections {
		return OffBoard
	}
	return neighbors[sq][d]
}
