package bitmg

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastleWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastleWhiteQ
	// Black king-side castling
	CastleBlackK
	// Black queen-side castling
	CastleBlackQ

	CastleNone CastlingRights = 0
	CastleAll                 = CastleWhiteK | CastleWhiteQ | CastleBlackK | CastleBlackQ
)

func (cr CastlingRights) String() string {
	if cr&CastleAll == 0 {
		return "-"
	}
	s := ""
	for i, ch := range "KQkq" {
		if cr&(1<<uint(i)) != 0 {
			s += string(ch)
		}
	}
	return s
}

// castleMask[sq] is the set of rights lost when a piece leaves or lands on sq.
var castleMask = func() (m [64]CastlingRights) {
	m[E1] = CastleWhiteK | CastleWhiteQ
	m[H1] = CastleWhiteK
	m[A1] = CastleWhiteQ
	m[E8] = CastleBlackK | CastleBlackQ
	m[H8] = CastleBlackK
	m[A8] = CastleBlackQ
	return m
}()

// Board is a Position plus the game state move generation needs.
type Board struct {
	Position

	// Side to move (which player's turn it is)
	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags)
	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmove clock (number of half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Zobrist key for the current position, kept up to date by MakeMove
	key ZKey
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for f := 0; f < 8; f++ {
		b.Put(White, backRank[f], SquareAt(f, 0))
		b.Put(White, Pawn, SquareAt(f, 1))
		b.Put(Black, Pawn, SquareAt(f, 6))
		b.Put(Black, backRank[f], SquareAt(f, 7))
	}
	b.castlingRights = CastleAll
	b.Rehash()
	return b
}

// NewEmptyBoard returns a board with no pieces, White to move, no rights.
func NewEmptyBoard() *Board {
	b := &Board{
		Position:        NewPosition(),
		enPassantSquare: NoSquare,
		fullmoveNumber:  1,
	}
	b.Rehash()
	return b
}

// SetPiece puts a piece on an empty square and updates the key.
func (b *Board) SetPiece(c Color, pt PieceType, sq Square) {
	b.Put(c, pt, sq)
	b.key ^= DefaultKeys.PieceKey(c, pt, sq)
}

// ClearSquare removes whatever stands on sq and updates the key.
func (b *Board) ClearSquare(sq Square) {
	c, pt, ok := b.PieceAt(sq)
	if !ok {
		return
	}
	b.Remove(c, pt, sq)
	b.key ^= DefaultKeys.PieceKey(c, pt, sq)
}

// SetSideToMove updates the side to play. Normal move making toggles automatically.
func (b *Board) SetSideToMove(c Color) {
	if b.sideToMove == c {
		return
	}
	b.sideToMove = c
	b.key ^= DefaultKeys.SideKey()
}

// SetCastling replaces the castling rights.
func (b *Board) SetCastling(cr CastlingRights) {
	cr &= CastleAll
	b.key ^= DefaultKeys.CastleKey(b.castlingRights) ^ DefaultKeys.CastleKey(cr)
	b.castlingRights = cr
}

// SetEnPassant replaces the en-passant target square (NoSquare for none).
// The key follows the square as given; move generation ignores a target no
// double push could have left.
func (b *Board) SetEnPassant(sq Square) {
	if b.enPassantSquare != NoSquare {
		b.key ^= DefaultKeys.EnPassantKey(b.enPassantSquare.File())
	}
	if !sq.Valid() {
		sq = NoSquare
	}
	b.enPassantSquare = sq
	if sq != NoSquare {
		b.key ^= DefaultKeys.EnPassantKey(sq.File())
	}
}

// Rehash recomputes the key from scratch.
func (b *Board) Rehash() { b.key = DefaultKeys.Hash(b) }

// Key returns the current Zobrist key.
func (b *Board) Key() ZKey { return b.key }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// Castling returns the castling rights.
func (b *Board) Castling() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// HalfmoveClock accessor for consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(c Color) bool {
	ks := b.KingSquare(c)
	if ks == NoSquare {
		return false
	}
	return b.Attacked(ks, c.Other())
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cp := *b
	return &cp
}
