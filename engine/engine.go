package engine

import (
	"github.com/pkg/errors"

	"chess-core/bitmg"
)

// Engine bundles the state the search loop shares across a game: the
// transposition table, the opening book and the position history.
type Engine struct {
	TT      *HashTable
	Book    *Book
	History *History
}

// New builds an Engine from cfg.
func New(cfg Config) (*Engine, error) {
	tt, err := cfg.NewHashTable()
	if err != nil {
		return nil, err
	}
	book, err := cfg.LoadBook()
	if err != nil {
		return nil, errors.Wrap(err, "book")
	}
	return &Engine{TT: tt, Book: book, History: NewHistory(bitmg.NewBoard())}, nil
}

// ResetForNewGame clears the transposition table so keys from the previous
// game cannot collide with the new one, and restarts the history at b.
func (e *Engine) ResetForNewGame(b *bitmg.Board) {
	e.TT.Clear()
	e.History.Reset(b)
}

// Play makes m on b and records the resulting position.
func (e *Engine) Play(b *bitmg.Board, m bitmg.Move) bitmg.Undo {
	u := b.MakeMove(m)
	e.History.Push(b)
	return u
}

// Unplay reverts the last Play.
func (e *Engine) Unplay(b *bitmg.Board, m bitmg.Move, u bitmg.Undo) {
	b.UnmakeMove(m, u)
	e.History.Pop()
}

// BookMoves returns the book moves stored for b that are legal in b. A key
// collision in the book therefore never yields an illegal move.
func (e *Engine) BookMoves(b *bitmg.Board) []BookMove {
	stored := e.Book.Lookup(b.Key())
	if len(stored) == 0 {
		return nil
	}
	var legal bitmg.MoveList
	b.Generate(&legal)
	out := stored[:0]
	for _, bm := range stored {
		if legal.Contains(bm.Move) {
			out = append(out, bm)
		}
	}
	return out
}

// Store records a search result for move m from b. It reports whether the
// table kept it.
func (e *Engine) Store(b *bitmg.Board, m bitmg.Move, draft int, score int16, node NodeType) bool {
	return e.TT.Insert(EntryFor(b, m, draft, score, node))
}

// Probe returns the table entry for b when one is stored under b's key.
func (e *Engine) Probe(b *bitmg.Board) (HashEntry, bool) {
	return e.TT.Probe(b.Key())
}
