package bitmg

// ZKey is a Zobrist hash key.
type ZKey uint64

// Seed starts the key chain and is the feedback constant of NextKey. Every
// table derived from it, and so every opening book keyed by these hashes,
// depends on it staying unchanged.
const Seed ZKey = 0x9D39247E33776D41

// StartPositionKey is the key of the standard starting position under
// DefaultKeys.
const StartPositionKey ZKey = 0x88C4E968A159498B

// NextKey advances the key chain: shift left one bit and, if a 1 was shifted
// out, fold the seed back in.
func NextKey(prev ZKey) ZKey { return nextKey(prev, Seed) }

func nextKey(prev, seed ZKey) ZKey {
	k := prev << 1
	if prev>>63 != 0 {
		k ^= seed
	}
	return k
}

// KeySpace holds the Zobrist keys for pieces, castling, en passant and side to move.
type KeySpace struct {
	side      ZKey                       // Black to move
	castle    [16]ZKey                   // one per castling-rights state
	enPassant [8]ZKey                    // one per en-passant file
	piece     [2][numPieceTypes][64]ZKey // color, piece type, square
}

// DefaultKeys is the key space every Board hashes with.
var DefaultKeys = NewKeySpace(Seed)

// NewKeySpace derives a key space from seed. The chain order is side to move,
// castling, en passant, then pieces by color, type and square.
func NewKeySpace(seed ZKey) *KeySpace {
	ks := &KeySpace{}
	k := seed
	next := func() ZKey {
		k = nextKey(k, seed)
		return k
	}
	ks.side = next()
	for i := range ks.castle {
		ks.castle[i] = next()
	}
	for i := range ks.enPassant {
		ks.enPassant[i] = next()
	}
	for c := range ks.piece {
		for pt := range ks.piece[c] {
			for sq := range ks.piece[c][pt] {
				ks.piece[c][pt][sq] = next()
			}
		}
	}
	return ks
}

// SideKey is XORed in when Black is to move.
func (ks *KeySpace) SideKey() ZKey { return ks.side }

// CastleKey returns the key for a castling-rights state.
func (ks *KeySpace) CastleKey(cr CastlingRights) ZKey { return ks.castle[cr&CastleAll] }

// EnPassantKey returns the key for an en-passant file (0..7).
func (ks *KeySpace) EnPassantKey(file int) ZKey { return ks.enPassant[file&7] }

// PieceKey returns the key for a piece on a square.
func (ks *KeySpace) PieceKey(c Color, pt PieceType, sq Square) ZKey {
	if pt >= numPieceTypes || !sq.Valid() {
		return 0
	}
	return ks.piece[c&1][pt][sq]
}

// Keys returns every key in chain order.
func (ks *KeySpace) Keys() []ZKey {
	out := make([]ZKey, 0, 1+16+8+2*numPieceTypes*64)
	out = append(out, ks.side)
	out = append(out, ks.castle[:]...)
	out = append(out, ks.enPassant[:]...)
	for c := range ks.piece {
		for pt := range ks.piece[c] {
			out = append(out, ks.piece[c][pt][:]...)
		}
	}
	return out
}

// Hash computes the key of b from scratch.
func (ks *KeySpace) Hash(b *Board) ZKey {
	var key ZKey
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt < numPieceTypes; pt++ {
			for bb := b.PiecesOf(c, pt); bb != 0; {
				key ^= ks.PieceKey(c, pt, bb.PopLowest())
			}
		}
	}
	if b.sideToMove == Black {
		key ^= ks.side
	}
	key ^= ks.CastleKey(b.castlingRights)
	if b.enPassantSquare != NoSquare {
		key ^= ks.EnPassantKey(b.enPassantSquare.File())
	}
	return key
}
