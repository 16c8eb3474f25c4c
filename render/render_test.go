package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"chess-core/bitmg"
)

func TestWriteSVG(t *testing.T) {
	snap := bitmg.NewBoard().Snapshot()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &snap, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if got := strings.Count(out, "<rect"); got != 64 {
		t.Fatalf("%d squares drawn", got)
	}
	if got := strings.Count(out, "<text"); got != 32 {
		t.Fatalf("%d pieces drawn", got)
	}
	if !strings.Contains(out, "♔") || !strings.Contains(out, "♚") {
		t.Fatalf("king glyphs missing")
	}
}

func TestWriteSVGHighlightAndInconsistent(t *testing.T) {
	b := bitmg.NewBoard()
	// a piece placed over an occupied square leaves e1 with two piece types
	b.Put(bitmg.White, bitmg.Queen, bitmg.E1)
	snap := b.Snapshot()
	opts := DefaultOptions()
	opts.Highlight = bitmg.SquareBB(bitmg.E1) | bitmg.SquareBB(bitmg.E8)
	opts.Flip = true
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &snap, opts); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "<rect"); got != 66 {
		t.Fatalf("%d rects, want 64 squares and 2 highlights", got)
	}
	if !strings.Contains(out, "fill:red") {
		t.Fatalf("inconsistent square not marked")
	}
}

func TestWriteSVGOptionsAndErrors(t *testing.T) {
	snap := bitmg.NewBoard().Snapshot()
	opts := DefaultOptions()
	opts.SquareSize = 0
	if err := WriteSVG(&bytes.Buffer{}, &snap, opts); err == nil {
		t.Fatalf("zero square size accepted")
	}
	failing := failWriter{}
	err := WriteSVG(failing, &snap, DefaultOptions())
	if errors.Cause(err) != errFail {
		t.Fatalf("write error lost: %v", err)
	}
}

func TestWriteText(t *testing.T) {
	snap := bitmg.NewBoard().Snapshot()
	var buf bytes.Buffer
	if err := WriteText(&buf, &snap); err != nil {
		t.Fatal(err)
	}
	if buf.String() != snap.String()+"\n" {
		t.Fatalf("got %q", buf.String())
	}
}

var errFail = errors.New("disk full")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errFail }
