package bitmg

// Undo holds the minimal state needed to undo a move.
type Undo struct {
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevKey       ZKey
}

// CastlingUpdate returns the castling rights m removes when played from a
// position holding rights cr, as an XOR mask over cr.
func CastlingUpdate(cr CastlingRights, m Move) CastlingRights {
	if !m.From().Valid() {
		return 0
	}
	return cr & (castleMask[m.From()] | castleMask[m.To()])
}

// MakeMove applies a legal move produced by the generator and returns the
// state UnmakeMove needs. The Zobrist key is updated incrementally.
func (b *Board) MakeMove(m Move) Undo {
	u := Undo{
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevKey:       b.key,
	}
	keys := DefaultKeys
	us, them := b.sideToMove, b.sideToMove.Other()
	from, to, pt := m.From(), m.To(), m.Piece()

	if b.enPassantSquare != NoSquare {
		b.key ^= keys.EnPassantKey(b.enPassantSquare.File())
		b.enPassantSquare = NoSquare
	}

	if captured := m.Captured(); captured != NoPieceType {
		capSq := to
		if m.Flags()&FlagEnPassant != 0 {
			capSq = to ^ 8
		}
		b.Remove(them, captured, capSq)
		b.key ^= keys.PieceKey(them, captured, capSq)
	}

	if promo := m.Promotion(); promo != NoPieceType {
		b.Remove(us, pt, from)
		b.Put(us, promo, to)
		b.key ^= keys.PieceKey(us, pt, from) ^ keys.PieceKey(us, promo, to)
	} else {
		b.MovePiece(us, pt, from, to)
		b.key ^= keys.PieceKey(us, pt, from) ^ keys.PieceKey(us, pt, to)
	}

	if m.Flags()&FlagCastle != 0 {
		rf, rt := castleRookMove(to)
		b.MovePiece(us, Rook, rf, rt)
		b.key ^= keys.PieceKey(us, Rook, rf) ^ keys.PieceKey(us, Rook, rt)
	}

	if m.Flags()&FlagDoublePush != 0 {
		b.enPassantSquare = (from + to) / 2
		b.key ^= keys.EnPassantKey(b.enPassantSquare.File())
	}

	if lost := CastlingUpdate(b.castlingRights, m); lost != 0 {
		b.key ^= keys.CastleKey(b.castlingRights)
		b.castlingRights ^= lost
		b.key ^= keys.CastleKey(b.castlingRights)
	}

	if pt == Pawn || m.IsCapture() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}
	b.sideToMove = them
	b.key ^= keys.SideKey()
	return u
}

// UnmakeMove reverts m, which must be the last move made with MakeMove.
func (b *Board) UnmakeMove(m Move, u Undo) {
	them := b.sideToMove
	us := them.Other()
	from, to, pt := m.From(), m.To(), m.Piece()

	if m.Flags()&FlagCastle != 0 {
		rf, rt := castleRookMove(to)
		b.MovePiece(us, Rook, rt, rf)
	}
	if promo := m.Promotion(); promo != NoPieceType {
		b.Remove(us, promo, to)
		b.Put(us, pt, from)
	} else {
		b.MovePiece(us, pt, to, from)
	}
	if captured := m.Captured(); captured != NoPieceType {
		capSq := to
		if m.Flags()&FlagEnPassant != 0 {
			capSq = to ^ 8
		}
		b.Put(them, captured, capSq)
	}

	if us == Black {
		b.fullmoveNumber--
	}
	b.sideToMove = us
	b.castlingRights = u.prevCastling
	b.enPassantSquare = u.prevEnPassant
	b.halfmoveClock = u.prevHalfmove
	b.key = u.prevKey
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var l MoveList
	b.Generate(&l)
	if depth == 1 {
		return uint64(l.Len())
	}
	var nodes uint64
	for _, m := range l.Slice() {
		u := b.MakeMove(m)
		nodes += Perft(b, depth-1)
		b.UnmakeMove(m, u)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	var l MoveList
	b.Generate(&l)
	for _, m := range l.Slice() {
		u := b.MakeMove(m)
		out[m] = Perft(b, depth-1)
		b.UnmakeMove(m, u)
	}
	return out
}
