// Command boardinfo prints a position's board, Zobrist key, legal moves and
// book moves, and can write the board as SVG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chess-core/bitmg"
	"chess-core/engine"
	"chess-core/render"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("boardinfo: ")

	fen := flag.String("fen", bitmg.FENStartPos, "FEN string (defaults to initial position)")
	moves := flag.String("moves", "", "Space-separated moves to play from the FEN first")
	bookPath := flag.String("book", "", "Opening book written by bookgen")
	svgOut := flag.String("svg", "", "Write the board as SVG to this file")
	flip := flag.Bool("flip", false, "Draw the SVG from Black's side")
	flag.Parse()

	board, err := bitmg.FromFEN(*fen)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg := engine.DefaultConfig()
	cfg.HashEntries = 1
	cfg.BookPath = *bookPath
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	eng.ResetForNewGame(board)
	for _, s := range strings.Fields(*moves) {
		m, err := board.ParseMove(s)
		if err != nil {
			log.Fatalf("%v", err)
		}
		eng.Play(board, m)
	}

	snap := board.Snapshot()
	if err := render.WriteText(os.Stdout, &snap); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("fen:  %s\n", board.FEN())
	fmt.Printf("key:  %016x\n", uint64(board.Key()))
	reps, _ := eng.History.Repetitions()
	switch {
	case board.InCheckmate():
		fmt.Println("status: checkmate")
	case board.InStalemate():
		fmt.Println("status: stalemate")
	case eng.History.IsDraw(eng.History.Len()):
		fmt.Println("status: draw (fifty moves or threefold repetition)")
	case board.InCheck(board.SideToMove()):
		fmt.Println("status: check")
	}
	if reps > 0 {
		fmt.Printf("repetitions: %d\n", reps)
	}

	legal := board.Moves()
	names := make([]string, len(legal))
	for i, m := range legal {
		names[i] = m.String()
	}
	fmt.Printf("legal (%d): %s\n", len(legal), strings.Join(names, " "))

	for _, bm := range eng.BookMoves(board) {
		fmt.Printf("book: %s weight=%d\n", bm.Move, bm.Weight)
	}

	if *svgOut != "" {
		f, err := os.Create(*svgOut)
		if err != nil {
			log.Fatalf("%v", err)
		}
		opts := render.DefaultOptions()
		opts.Flip = *flip
		if err := render.WriteSVG(f, &snap, opts); err != nil {
			f.Close()
			log.Fatalf("%v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("wrote %s", *svgOut)
	}
}
