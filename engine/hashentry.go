package engine

import (
	"fmt"

	"chess-core/bitmg"
)

// NodeType tags how a stored score relates to the true value.
type NodeType uint8

const (
	// NodeAll: every move failed low, the score is an upper bound.
	NodeAll NodeType = iota
	// NodeCut: a move failed high, the score is a lower bound.
	NodeCut
	// NodePV: the score is exact.
	NodePV
)

func (nt NodeType) String() string {
	switch nt {
	case NodeAll:
		return "all"
	case NodeCut:
		return "cut"
	case NodePV:
		return "pv"
	}
	return "?"
}

// Move-word layout, LSB first. Widths and offsets are part of the stored
// format and must not move.
//
//	bits  0-5   from square
//	bits  6-11  to square
//	bits 12-14  moved piece type
//	bits 15-17  captured piece type (7 = none)
//	bits 18-20  promoted piece type (7 = none)
//	bits 21-24  castling rights before the move
//	bits 25-28  castling rights removed by the move (XOR mask)
//	bits 29-32  en-passant file before the move (8 = none)
//	bits 33-36  en-passant file after the move (8 = none)
//	bits 37-38  node type
//	bits 39-45  draft (0-127)
//	bit  46     mover color
//	bits 47-62  score (int16)
//	bit  63     occupied
const (
	fromShift         = 0
	toShift           = 6
	movedShift        = 12
	capturedShift     = 15
	promotedShift     = 18
	castleBeforeShift = 21
	castleUpdateShift = 25
	epBeforeShift     = 29
	epAfterShift      = 33
	nodeShift         = 37
	draftShift        = 39
	moverShift        = 46
	scoreShift        = 47
	occupiedBit       = uint64(1) << 63

	noEnPassant = 8
	// MaxDraft is the deepest draft the entry can hold.
	MaxDraft = 127
)

// HashEntry is one transposition-table record: the full key and a packed
// move word.
type HashEntry struct {
	Key  bitmg.ZKey
	word uint64
}

// EntryData is the unpacked content of a HashEntry.
type EntryData struct {
	Move            bitmg.Move
	Mover           bitmg.Color
	Draft           int
	Score           int16
	Node            NodeType
	CastleBefore    bitmg.CastlingRights
	CastleUpdate    bitmg.CastlingRights
	EnPassantBefore bitmg.Square // NoSquare for none
	EnPassantAfter  bitmg.Square // NoSquare for none
}

func epFile(sq bitmg.Square) uint64 {
	if !sq.Valid() {
		return noEnPassant
	}
	return uint64(sq.File())
}

// NewHashEntry packs d under key. Drafts outside 0..MaxDraft are clamped.
func NewHashEntry(key bitmg.ZKey, d EntryData) HashEntry {
	draft := d.Draft
	if draft < 0 {
		draft = 0
	} else if draft > MaxDraft {
		draft = MaxDraft
	}
	m := d.Move
	w := uint64(m.From()&0x3F)<<fromShift |
		uint64(m.To()&0x3F)<<toShift |
		uint64(m.Piece()&7)<<movedShift |
		uint64(m.Captured()&7)<<capturedShift |
		uint64(m.Promotion()&7)<<promotedShift |
		uint64(d.CastleBefore&0xF)<<castleBeforeShift |
		uint64(d.CastleUpdate&0xF)<<castleUpdateShift |
		epFile(d.EnPassantBefore)<<epBeforeShift |
		epFile(d.EnPassantAfter)<<epAfterShift |
		uint64(d.Node&3)<<nodeShift |
		uint64(draft)<<draftShift |
		uint64(d.Mover&1)<<moverShift |
		uint64(uint16(d.Score))<<scoreShift |
		occupiedBit
	return HashEntry{Key: key, word: w}
}

// EntryFor packs a result for move m searched from position b. Castling
// before/after and en passant before/after are read from b.
func EntryFor(b *bitmg.Board, m bitmg.Move, draft int, score int16, node NodeType) HashEntry {
	epAfter := bitmg.NoSquare
	if m.Flags()&bitmg.FlagDoublePush != 0 {
		epAfter = (m.From() + m.To()) / 2
	}
	return NewHashEntry(b.Key(), EntryData{
		Move:            m,
		Mover:           b.SideToMove(),
		Draft:           draft,
		Score:           score,
		Node:            node,
		CastleBefore:    b.Castling(),
		CastleUpdate:    bitmg.CastlingUpdate(b.Castling(), m),
		EnPassantBefore: b.EnPassantSquare(),
		EnPassantAfter:  epAfter,
	})
}

func (e HashEntry) field(shift, width uint) uint64 { return e.word >> shift & (1<<width - 1) }

// IsEmpty reports whether the entry is an unused slot.
func (e HashEntry) IsEmpty() bool { return e.word&occupiedBit == 0 }

// Word returns the packed move word.
func (e HashEntry) Word() uint64 { return e.word }

func (e HashEntry) From() bitmg.Square { return bitmg.Square(e.field(fromShift, 6)) }
func (e HashEntry) To() bitmg.Square   { return bitmg.Square(e.field(toShift, 6)) }

func (e HashEntry) MovedPiece() bitmg.PieceType    { return bitmg.PieceType(e.field(movedShift, 3)) }
func (e HashEntry) CapturedPiece() bitmg.PieceType { return bitmg.PieceType(e.field(capturedShift, 3)) }
func (e HashEntry) PromotedPiece() bitmg.PieceType { return bitmg.PieceType(e.field(promotedShift, 3)) }

func (e HashEntry) CastleBefore() bitmg.CastlingRights {
	return bitmg.CastlingRights(e.field(castleBeforeShift, 4))
}

func (e HashEntry) CastleUpdate() bitmg.CastlingRights {
	return bitmg.CastlingRights(e.field(castleUpdateShift, 4))
}

// CastleAfter is the castling state once the move is played.
func (e HashEntry) CastleAfter() bitmg.CastlingRights { return e.CastleBefore() ^ e.CastleUpdate() }

func (e HashEntry) Node() NodeType     { return NodeType(e.field(nodeShift, 2)) }
func (e HashEntry) Draft() int         { return int(e.field(draftShift, 7)) }
func (e HashEntry) Mover() bitmg.Color { return bitmg.Color(e.field(moverShift, 1)) }
func (e HashEntry) Score() int16       { return int16(uint16(e.field(scoreShift, 16))) }

// EnPassantBefore is the en-passant target available to the mover, or NoSquare.
func (e HashEntry) EnPassantBefore() bitmg.Square {
	f := e.field(epBeforeShift, 4)
	if f >= noEnPassant {
		return bitmg.NoSquare
	}
	// the mover captures toward the opponent's side
	if e.Mover() == bitmg.White {
		return bitmg.SquareAt(int(f), 5)
	}
	return bitmg.SquareAt(int(f), 2)
}

// EnPassantAfter is the en-passant target the move creates, or NoSquare.
func (e HashEntry) EnPassantAfter() bitmg.Square {
	f := e.field(epAfterShift, 4)
	if f >= noEnPassant {
		return bitmg.NoSquare
	}
	if e.Mover() == bitmg.White {
		return bitmg.SquareAt(int(f), 2)
	}
	return bitmg.SquareAt(int(f), 5)
}

// Move rebuilds the generator's Move, flags included.
func (e HashEntry) Move() bitmg.Move {
	if e.IsEmpty() {
		return bitmg.EndOfList
	}
	from, to, pt := e.From(), e.To(), e.MovedPiece()
	flag := bitmg.FlagNone
	switch {
	case pt == bitmg.King && (int(from)-int(to) == 2 || int(to)-int(from) == 2):
		flag = bitmg.FlagCastle
	case pt == bitmg.Pawn && e.EnPassantAfter() != bitmg.NoSquare:
		flag = bitmg.FlagDoublePush
	case pt == bitmg.Pawn && e.CapturedPiece() == bitmg.Pawn && to == e.EnPassantBefore() && from.File() != to.File():
		flag = bitmg.FlagEnPassant
	}
	return bitmg.NewMove(from, to, pt, e.CapturedPiece(), e.PromotedPiece(), flag)
}

// MoveString renders the move in long algebraic form; castling is written
// O-O or O-O-O.
func (e HashEntry) MoveString() string {
	if e.IsEmpty() {
		return "0000"
	}
	from, to := e.From(), e.To()
	if e.MovedPiece() == bitmg.King {
		switch {
		case from == bitmg.E1 && to == bitmg.G1, from == bitmg.E8 && to == bitmg.G8:
			return "O-O"
		case from == bitmg.E1 && to == bitmg.C1, from == bitmg.E8 && to == bitmg.C8:
			return "O-O-O"
		}
	}
	s := from.String() + to.String()
	if p := e.PromotedPiece(); p != bitmg.NoPieceType {
		s += string(p.Letter())
	}
	return s
}

// String is a one-line diagnostic dump of every packed field.
func (e HashEntry) String() string {
	if e.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("%s key=%016x draft=%d score=%d node=%s castle=%s->%s ep=%s->%s",
		e.MoveString(), uint64(e.Key), e.Draft(), e.Score(), e.Node(),
		e.CastleBefore(), e.CastleAfter(), e.EnPassantBefore(), e.EnPassantAfter())
}
