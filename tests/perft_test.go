package chesscore_test

import (
	"testing"

	myengine "chess-core/bitmg"
)

type perftCase struct {
	name  string
	fen   string
	nodes []uint64 // nodes[i] is perft(i+1)
}

var perftCases = []perftCase{
	{"initial", myengine.FENStartPos, []uint64{20, 400, 8902, 197281}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039, 97862}},
	{"pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238}},
	{"pos4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
	{"pos4 mirrored", "r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1", []uint64{6, 264, 9467}},
	{"pos5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}},
	{"pos6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{46, 2079, 89890}},
}

func TestPerft(t *testing.T) {
	for _, tc := range perftCases {
		t.Run(tc.name, func(t *testing.T) {
			board, err := myengine.FromFEN(tc.fen)
			if err != nil {
				t.Fatalf("FromFEN failed: %v", err)
			}
			for i, want := range tc.nodes {
				depth := i + 1
				if testing.Short() && depth > 3 {
					break
				}
				if got := myengine.Perft(board, depth); got != want {
					t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
				}
			}
			if board.FEN() != tc.fen {
				t.Fatalf("perft modified the board: %s", board.FEN())
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	board, err := myengine.FromFEN(perftCases[1].fen)
	if err != nil {
		t.Fatalf("FromFEN failed: %v", err)
	}
	var total uint64
	for m, n := range myengine.PerftDivide(board, 3) {
		if n == 0 {
			t.Errorf("root move %v has no replies", m)
		}
		total += n
	}
	if total != 97862 {
		t.Fatalf("divide total %d want 97862", total)
	}
}
