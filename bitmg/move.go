package bitmg

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 7 bits, wide enough for NoSquare
	moveToShift      = 7  // 6 bits
	movePieceShift   = 13 // 3 bits
	moveCaptureShift = 16 // 3 bits
	movePromoteShift = 19 // 3 bits
	moveFlagShift    = 22 // 3 bits
)

// Move flags
const (
	FlagNone       uint8 = 0
	FlagDoublePush uint8 = 1
	FlagEnPassant  uint8 = 2
	FlagCastle     uint8 = 4
)

// EndOfList terminates a MoveList; its From() is NoSquare.
const EndOfList = Move(uint32(NoSquare) << moveFromShift)

// NewMove constructs a Move value from components. Use NoPieceType for
// captured and promotion when they do not apply.
func NewMove(from, to Square, piece, captured, promotion PieceType, flag uint8) Move {
	return Move(uint32(from&0x7F) |
		uint32(to&0x3F)<<moveToShift |
		uint32(piece&7)<<movePieceShift |
		uint32(captured&7)<<moveCaptureShift |
		uint32(promotion&7)<<movePromoteShift |
		uint32(flag&7)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(uint32(m) >> moveFromShift & 0x7F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square(uint32(m) >> moveToShift & 0x3F) }

// Piece returns the moved piece type.
func (m Move) Piece() PieceType { return PieceType(uint32(m) >> movePieceShift & 7) }

// Captured returns the captured piece type or NoPieceType.
func (m Move) Captured() PieceType { return PieceType(uint32(m) >> moveCaptureShift & 7) }

// Promotion returns the promoted-to piece type or NoPieceType.
func (m Move) Promotion() PieceType { return PieceType(uint32(m) >> movePromoteShift & 7) }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8(uint32(m) >> moveFlagShift & 7) }

// IsCapture reports whether the move removes an enemy piece (en passant included).
func (m Move) IsCapture() bool { return m.Captured() != NoPieceType }

// String produces the long-algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.From() == NoSquare {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPieceType {
		s += string(p.Letter())
	}
	return s
}

// MaxMoves bounds the number of legal moves in any chess position.
const MaxMoves = 255

// MoveList is a fixed-capacity move buffer. Once Reset or generated into, the
// slot after the last move holds EndOfList, so a consumer may walk it without
// a count. The zero value is an empty list for Len, At and Slice, but its
// first slot is not terminated until Reset or a generator writes to it.
type MoveList struct {
	moves [MaxMoves + 1]Move
	n     int
}

// Reset empties the list.
func (l *MoveList) Reset() {
	l.n = 0
	l.moves[0] = EndOfList
}

func (l *MoveList) terminate() { l.moves[l.n] = EndOfList }

func (l *MoveList) push(m Move) {
	l.moves[l.n] = m
	l.n++
	l.moves[l.n] = EndOfList
}

// Len returns the number of moves.
func (l *MoveList) Len() int { return l.n }

// At returns the i-th move, or EndOfList past the end.
func (l *MoveList) At(i int) Move {
	if i < 0 || i >= l.n {
		return EndOfList
	}
	return l.moves[i]
}

// Slice returns the moves as a slice backed by the list.
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for _, x := range l.moves[:l.n] {
		if x == m {
			return true
		}
	}
	return false
}
