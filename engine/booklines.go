package engine

import (
	"bufio"
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"chess-core/bitmg"
)

var moveNumbers = regexp.MustCompile(`[0-9]+\.+`)

// ReadBookLines reads one opening line per record. With column < 0 every
// text line is a line; otherwise r is CSV and the line is taken from that
// column. Move numbers ("1.", "12...") are stripped and blank or '#' lines
// are skipped.
func ReadBookLines(r io.Reader, column int) ([][]string, error) {
	var raw []string
	if column < 0 {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			raw = append(raw, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "read lines")
		}
	} else {
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		for {
			rec, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, errors.Wrap(err, "read csv")
			}
			if column >= len(rec) {
				return nil, errors.Errorf("csv record %q has no column %d", rec, column)
			}
			raw = append(raw, rec[column])
		}
	}

	var lines [][]string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if f := strings.Fields(moveNumbers.ReplaceAllString(s, " ")); len(f) > 0 {
			lines = append(lines, f)
		}
	}
	return lines, nil
}

// BuildBook plays each line from the starting position and records the first
// plies moves with weight 1 under the key they were played from. A line stops
// at its first illegal move; the returned errors describe those lines.
func BuildBook(lines [][]string, plies int) (*Book, []error) {
	bk := NewBook()
	var bad []error
	for i, line := range lines {
		b := bitmg.NewBoard()
		for ply, s := range line {
			if ply >= plies {
				break
			}
			m, err := b.ParseMove(s)
			if err != nil {
				bad = append(bad, errors.Wrapf(err, "line %d", i+1))
				break
			}
			bk.Add(b.Key(), m, 1)
			b.MakeMove(m)
		}
	}
	return bk, bad
}
