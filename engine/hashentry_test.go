package engine

import (
	"strings"
	"testing"

	"chess-core/bitmg"
)

func entryAfter(t *testing.T, fen, moves, move string, draft int, score int16, node NodeType) (*bitmg.Board, bitmg.Move, HashEntry) {
	t.Helper()
	b, err := bitmg.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.PlayMoves(moves); err != nil {
		t.Fatal(err)
	}
	m, err := b.ParseMove(move)
	if err != nil {
		t.Fatal(err)
	}
	return b, m, EntryFor(b, m, draft, score, node)
}

func TestEntryForDoublePush(t *testing.T) {
	b, m, e := entryAfter(t, bitmg.FENStartPos, "", "e2e4", 9, 35, NodePV)
	if e.IsEmpty() || e.Key != b.Key() {
		t.Fatalf("entry key %016x, board %016x", uint64(e.Key), uint64(b.Key()))
	}
	if e.From() != m.From() || e.To() != m.To() || e.MovedPiece() != bitmg.Pawn {
		t.Fatalf("move fields: %v", e)
	}
	if e.CapturedPiece() != bitmg.NoPieceType || e.PromotedPiece() != bitmg.NoPieceType {
		t.Fatalf("capture/promotion fields: %v", e)
	}
	if e.CastleBefore() != bitmg.CastleAll || e.CastleUpdate() != 0 || e.CastleAfter() != bitmg.CastleAll {
		t.Fatalf("castling fields: %v", e)
	}
	if e.EnPassantBefore() != bitmg.NoSquare || e.EnPassantAfter() != bitmg.SquareAt(4, 2) {
		t.Fatalf("en passant fields: %v -> %v", e.EnPassantBefore(), e.EnPassantAfter())
	}
	if e.Draft() != 9 || e.Score() != 35 || e.Node() != NodePV || e.Mover() != bitmg.White {
		t.Fatalf("search fields: %v", e)
	}
	if e.Move() != m {
		t.Fatalf("Move() = %v (%08x), want %v (%08x)", e.Move(), uint32(e.Move()), m, uint32(m))
	}
}

func TestEntryForBlackReply(t *testing.T) {
	_, m, e := entryAfter(t, bitmg.FENStartPos, "e2e4", "c7c5", 4, -12, NodeAll)
	if e.Mover() != bitmg.Black {
		t.Fatalf("mover %v", e.Mover())
	}
	if e.EnPassantBefore() != bitmg.SquareAt(4, 2) {
		t.Fatalf("ep before %v, want e3", e.EnPassantBefore())
	}
	if e.EnPassantAfter() != bitmg.SquareAt(2, 5) {
		t.Fatalf("ep after %v, want c6", e.EnPassantAfter())
	}
	if e.Move() != m || e.Score() != -12 || e.Node() != NodeAll {
		t.Fatalf("round trip: %v", e)
	}
}

func TestEntryForSpecialMoves(t *testing.T) {
	cases := []struct {
		name, fen, move, str string
		after                bitmg.CastlingRights
	}{
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5f6", "e5f6", bitmg.CastleAll},
		{"short castle", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "e1g1", "O-O",
			bitmg.CastleBlackK | bitmg.CastleBlackQ},
		{"long castle black", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O",
			bitmg.CastleWhiteK | bitmg.CastleWhiteQ},
		{"promotion capture", "rn5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8n", "a7b8n", bitmg.CastleNone},
		{"rook capture", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "h1h8", "h1h8",
			bitmg.CastleWhiteQ | bitmg.CastleBlackQ},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, m, e := entryAfter(t, c.fen, "", c.move, 3, 0, NodeCut)
			if got := e.Move(); got != m {
				t.Fatalf("Move() = %v flags %d, want %v flags %d", got, got.Flags(), m, m.Flags())
			}
			if got := e.MoveString(); got != c.str {
				t.Fatalf("MoveString() = %q, want %q", got, c.str)
			}
			if got := e.CastleAfter(); got != c.after {
				t.Fatalf("castle after %v, want %v", got, c.after)
			}
			b.MakeMove(m)
			if b.Castling() != e.CastleAfter() {
				t.Fatalf("board castling %v disagrees with entry %v", b.Castling(), e.CastleAfter())
			}
		})
	}
}

func TestEntryClamping(t *testing.T) {
	m := bitmg.NewMove(bitmg.A1, bitmg.H8, bitmg.Queen, bitmg.NoPieceType, bitmg.NoPieceType, bitmg.FlagNone)
	deep := NewHashEntry(1, EntryData{Move: m, Draft: 500, Score: -32768})
	if deep.Draft() != MaxDraft || deep.Score() != -32768 {
		t.Fatalf("draft %d score %d", deep.Draft(), deep.Score())
	}
	shallow := NewHashEntry(1, EntryData{Move: m, Draft: -3, Score: 32767, Mover: bitmg.Black})
	if shallow.Draft() != 0 || shallow.Score() != 32767 || shallow.Mover() != bitmg.Black {
		t.Fatalf("draft %d score %d", shallow.Draft(), shallow.Score())
	}
	// a zero-draft all-node entry still counts as occupied
	zero := NewHashEntry(0, EntryData{Move: bitmg.NewMove(bitmg.A1, bitmg.A1, bitmg.Pawn, 0, 0, 0)})
	if zero.IsEmpty() {
		t.Fatalf("packed entry reported empty")
	}
}

func TestEntryStrings(t *testing.T) {
	var empty HashEntry
	if !empty.IsEmpty() || empty.String() != "<empty>" || empty.MoveString() != "0000" {
		t.Fatalf("empty entry: %q", empty.String())
	}
	if empty.Move() != bitmg.EndOfList {
		t.Fatalf("empty entry move %v", empty.Move())
	}
	_, _, e := entryAfter(t, bitmg.FENStartPos, "", "g1f3", 7, 20, NodeCut)
	s := e.String()
	for _, want := range []string{"g1f3", "draft=7", "score=20", "node=cut", "castle=KQkq->KQkq", "ep=-->-"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q lacks %q", s, want)
		}
	}
	for nt, want := range map[NodeType]string{NodeAll: "all", NodeCut: "cut", NodePV: "pv", 3: "?"} {
		if nt.String() != want {
			t.Errorf("%d.String() = %q", nt, nt.String())
		}
	}
}
