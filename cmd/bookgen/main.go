// Command bookgen builds an opening book from move sequences played from the
// starting position. Input is one line per game, or a CSV file with the moves
// in one column; move numbers are ignored.
package main

import (
	"flag"
	"log"
	"os"

	"chess-core/engine"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bookgen: ")

	in := flag.String("in", "", "Text or CSV file of move sequences (required)")
	out := flag.String("out", "book.bin", "Book file to write")
	plies := flag.Int("plies", 16, "Only record the first N plies of each line")
	column := flag.Int("column", -1, "Read CSV and take moves from this column (-1: plain lines)")
	flag.Parse()

	if *in == "" {
		log.Fatalf("-in is required")
	}
	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("%v", err)
	}
	lines, err := engine.ReadBookLines(f, *column)
	f.Close()
	if err != nil {
		log.Fatalf("read %s: %v", *in, err)
	}

	book, bad := engine.BuildBook(lines, *plies)
	for _, err := range bad {
		log.Printf("%v", err)
	}
	if err := book.SaveBook(*out); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("wrote %d positions from %d lines to %s", book.Len(), len(lines), *out)
}
