package bitmg

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseMove resolves a long-algebraic string (e2e4, e7e8q) against the legal
// moves of the side to move.
func (b *Board) ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if len(movestr) < 4 || len(movestr) > 5 {
		return EndOfList, errors.Errorf("move %q: invalid length", movestr)
	}
	from, err := ParseSquare(movestr[0:2])
	if err != nil {
		return EndOfList, errors.Wrapf(err, "move %q", movestr)
	}
	to, err := ParseSquare(movestr[2:4])
	if err != nil {
		return EndOfList, errors.Wrapf(err, "move %q", movestr)
	}
	promo := NoPieceType
	if len(movestr) == 5 {
		switch movestr[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return EndOfList, errors.Errorf("move %q: invalid promotion piece", movestr)
		}
	}
	var l MoveList
	b.Generate(&l)
	for _, m := range l.Slice() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return EndOfList, errors.Errorf("move %q: not legal in %s", movestr, b.FEN())
}

// Apply plays a move and returns an undo closure.
func (b *Board) Apply(m Move) func() {
	u := b.MakeMove(m)
	return func() { b.UnmakeMove(m, u) }
}

// PlayMoves parses and plays a space-separated move sequence.
func (b *Board) PlayMoves(seq string) error {
	for _, s := range strings.Fields(seq) {
		m, err := b.ParseMove(s)
		if err != nil {
			return err
		}
		b.MakeMove(m)
	}
	return nil
}
