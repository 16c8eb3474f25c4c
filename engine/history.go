package engine

import "chess-core/bitmg"

// FiftyMoveLimit is the halfmove clock value at which the game is drawn.
const FiftyMoveLimit = 100

// State is what History keeps per ply to reason about repetitions and draws.
type State struct {
	Key    bitmg.ZKey
	Rule50 int
}

// History is the stack of positions reached in the current game, the root
// position first. A search pushes on MakeMove and pops on UnmakeMove.
type History struct {
	states []State
}

// NewHistory returns a history holding only b.
func NewHistory(b *bitmg.Board) *History {
	h := &History{}
	h.Reset(b)
	return h
}

// Reset rebuilds the stack so that it only contains b.
func (h *History) Reset(b *bitmg.Board) {
	h.states = h.states[:0]
	h.Push(b)
}

// Push appends b's current state.
func (h *History) Push(b *bitmg.Board) {
	h.states = append(h.states, State{Key: b.Key(), Rule50: b.HalfmoveClock()})
}

// Pop drops the newest state.
func (h *History) Pop() {
	if len(h.states) == 0 {
		return
	}
	h.states = h.states[:len(h.states)-1]
}

// Len returns the number of recorded states.
func (h *History) Len() int { return len(h.states) }

// Sync makes sure the top of the stack is b, resetting when it is not.
func (h *History) Sync(b *bitmg.Board) {
	if len(h.states) == 0 || h.states[len(h.states)-1].Key != b.Key() {
		h.Reset(b)
		return
	}
	h.states[len(h.states)-1].Rule50 = b.HalfmoveClock()
}

// IsDraw reports a fifty-move draw, a threefold repetition, or a single
// repetition of a position first seen at or after rootIndex (inside the
// search tree, where one repeat is enough to score a draw).
func (h *History) IsDraw(rootIndex int) bool {
	if len(h.states) == 0 {
		return false
	}
	curr := h.states[len(h.states)-1]
	if curr.Rule50 >= FiftyMoveLimit {
		return true
	}
	count, first := h.Repetitions()
	if count >= 2 {
		return true
	}
	return count >= 1 && first >= rootIndex
}

// Repetitions counts earlier occurrences of the newest position within the
// reversible window, and returns the index of the first one (-1 for none).
func (h *History) Repetitions() (count, first int) {
	first = -1
	if len(h.states) <= 1 {
		return 0, first
	}
	curr := h.states[len(h.states)-1]
	start := len(h.states) - 1 - curr.Rule50
	if start < 0 {
		start = 0
	}
	for i := start; i <= len(h.states)-2; i++ {
		if h.states[i].Key == curr.Key {
			count++
			if first == -1 {
				first = i
			}
		}
	}
	return count, first
}
