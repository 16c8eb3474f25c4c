// Package render draws board snapshots as text or SVG.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"chess-core/bitmg"
)

// Options controls the SVG output.
type Options struct {
	SquareSize int
	Light      string
	Dark       string
	// Highlight squares get a border, e.g. the last move.
	Highlight bitmg.Bitboard
	// Flip draws the board from Black's side.
	Flip bool
}

// DefaultOptions returns a 400px board.
func DefaultOptions() Options {
	return Options{SquareSize: 50, Light: "#f0d9b5", Dark: "#b58863"}
}

var glyphs = map[byte]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
	'!': "?",
}

// WriteSVG draws snap as an SVG document. Inconsistent squares are drawn
// red with a question mark.
func WriteSVG(w io.Writer, snap *bitmg.Snapshot, opts Options) error {
	if opts.SquareSize <= 0 {
		return errors.Errorf("square size %d: must be positive", opts.SquareSize)
	}
	sz := opts.SquareSize
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(8*sz, 8*sz)
	for sq := bitmg.Square(0); sq < 64; sq++ {
		col, row := sq.File(), 7-sq.Rank()
		if opts.Flip {
			col, row = 7-col, 7-row
		}
		x, y := col*sz, row*sz

		fill := opts.Light
		if (sq.File()+sq.Rank())%2 == 0 {
			fill = opts.Dark
		}
		sc := snap[sq]
		if sc.State == bitmg.SquareInconsistent {
			fill = "red"
		}
		canvas.Rect(x, y, sz, sz, "fill:"+fill)
		if opts.Highlight.Has(sq) {
			canvas.Rect(x+1, y+1, sz-2, sz-2, "fill:none;stroke:#1e90ff;stroke-width:3")
		}
		if g, ok := glyphs[sc.Symbol()]; ok {
			canvas.Text(x+sz/2, y+sz*4/5, g,
				fmt.Sprintf("text-anchor:middle;font-size:%dpx", sz*4/5))
		}
	}
	canvas.End()
	return errors.Wrap(ew.err, "write svg")
}

// WriteText writes the snapshot grid followed by a blank line.
func WriteText(w io.Writer, snap *bitmg.Snapshot) error {
	_, err := fmt.Fprintf(w, "%s\n", snap.String())
	return errors.Wrap(err, "write board")
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
