package bitmg

import (
	"testing"

	"github.com/pkg/errors"
)

func playOne(t *testing.T, fen, move string) (*Board, Move, Undo) {
	t.Helper()
	b := MustFromFEN(fen)
	m, err := b.ParseMove(move)
	if err != nil {
		t.Fatal(err)
	}
	return b, m, b.MakeMove(m)
}

func TestMakeUnmakeSpecialMoves(t *testing.T) {
	cases := []struct {
		name, fen, move, after string
	}{
		{"double push", FENStartPos, "e2e4",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"knight", FENStartPos, "g1f3",
			"rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1"},
		{"black move bumps fullmove", "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1", "g8f6",
			"rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKB1R w KQkq - 2 2"},
		{"castle short", kiwipete, "e1g1",
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R4RK1 b kq - 1 1"},
		{"castle long black", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 3 9", "e8c8",
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 4 10"},
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5f6",
			"rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3"},
		{"promotion capture", "1n5k/P7/8/8/8/8/8/7K w - - 5 40", "a7b8q",
			"1Q5k/8/8/8/8/8/8/7K b - - 0 40"},
		{"rook takes rook", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "a1a8",
			"R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1"},
		{"king move", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1e2",
			"r3k2r/8/8/8/8/8/4K3/R6R b kq - 1 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, m, u := playOne(t, c.fen, c.move)
			if got := b.FEN(); got != c.after {
				t.Fatalf("after %s:\n got %s\nwant %s", c.move, got, c.after)
			}
			if b.Key() != DefaultKeys.Hash(b) {
				t.Fatalf("incremental key drifted")
			}
			if b.Key() != MustFromFEN(c.after).Key() {
				t.Fatalf("key differs from the parsed result position")
			}
			if err := b.Validate(); err != nil {
				t.Fatal(err)
			}
			b.UnmakeMove(m, u)
			if got := b.FEN(); got != c.fen {
				t.Fatalf("unmake:\n got %s\nwant %s", got, c.fen)
			}
			if b.Key() != MustFromFEN(c.fen).Key() {
				t.Fatalf("unmake did not restore the key")
			}
		})
	}
}

func TestCastlingUpdate(t *testing.T) {
	b := MustFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	for _, c := range []struct {
		move string
		want CastlingRights
	}{
		{"e1g1", CastleWhiteK | CastleWhiteQ},
		{"h1h8", CastleWhiteK | CastleBlackK},
		{"a1a2", CastleWhiteQ},
		{"e1d1", CastleWhiteK | CastleWhiteQ},
	} {
		m, err := b.ParseMove(c.move)
		if err != nil {
			t.Fatal(err)
		}
		if got := CastlingUpdate(b.Castling(), m); got != c.want {
			t.Errorf("%s: update %v, want %v", c.move, got, c.want)
		}
	}
	// rights already gone are not removed twice
	m := NewMove(H1, H8, Rook, Rook, NoPieceType, FlagNone)
	if got := CastlingUpdate(CastleBlackQ, m); got != 0 {
		t.Errorf("update on absent rights = %v", got)
	}
	if CastlingUpdate(CastleAll, EndOfList) != 0 {
		t.Errorf("EndOfList changes castling")
	}
}

func TestApplyAndParseMove(t *testing.T) {
	b := NewBoard()
	m, err := b.ParseMove("E2E4")
	if err != nil {
		t.Fatal(err)
	}
	undo := b.Apply(m)
	if b.SideToMove() != Black || b.EnPassantSquare() != SquareAt(4, 2) {
		t.Fatalf("apply: %s", b.FEN())
	}
	undo()
	if b.Key() != StartPositionKey || b.FEN() != FENStartPos {
		t.Fatalf("undo: %s", b.FEN())
	}
	for _, bad := range []string{"e2", "e2e5", "z9e4", "e7e8x", "e2e4e5"} {
		if _, err := b.ParseMove(bad); err == nil {
			t.Errorf("ParseMove(%q) accepted", bad)
		}
	}
	if err := b.PlayMoves("e2e4 e7e5 e1e3"); err == nil {
		t.Fatalf("illegal sequence accepted")
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	} {
		if got := MustFromFEN(fen).FEN(); got != fen {
			t.Errorf("round trip:\n got %s\nwant %s", got, fen)
		}
	}
	b, err := FromFEN("4k3/8/8/8/8/8/8/4K3 b - -")
	if err != nil {
		t.Fatal(err)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 || b.SideToMove() != Black {
		t.Fatalf("defaults: %s", b.FEN())
	}
	for _, bad := range []string{
		"",
		"8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w X - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - z9 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - - a 1",
		// en passant on the mover's own side, or with no pushed pawn
		"4k3/8/8/8/4K3/8/3P4/8 w - e3 0 1",
		"4k3/8/8/2pP4/8/8/8/4K3 w - e6 0 1",
		"4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1",
	} {
		_, err := FromFEN(bad)
		if err == nil {
			t.Errorf("FromFEN(%q) accepted", bad)
		} else if errors.Cause(err) != ErrInvalidFEN {
			t.Errorf("FromFEN(%q): cause %v", bad, errors.Cause(err))
		}
	}
}
