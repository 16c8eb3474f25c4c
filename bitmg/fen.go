package bitmg

import (
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/pkg/errors"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is the cause of every FromFEN failure.
var ErrInvalidFEN = errors.New("invalid fen")

// FromFEN builds a Board from a FEN string. Piece placement and side to move
// come from dragontoothmg's parser; castling, en passant and the clocks are
// read from the remaining fields.
func FromFEN(fen string) (b *Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: want at least 4 fields", fen)
	}
	if strings.Count(fields[0], "/") != 7 {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: want 8 ranks", fen)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad side to move", fen)
	}

	// missing clocks default to "0 1"
	for clocks := []string{"0", "1"}; len(fields) < 6; {
		fields = append(fields, clocks[len(fields)-4])
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, errors.Wrapf(ErrInvalidFEN, "%q: %v", fen, r)
		}
	}()
	dt := dragontoothmg.ParseFen(strings.Join(fields[:6], " "))

	b = NewEmptyBoard()
	place := func(c Color, bbs dragontoothmg.Bitboards) {
		for pt, bb := range map[PieceType]uint64{
			Pawn:   bbs.Pawns,
			Knight: bbs.Knights,
			Bishop: bbs.Bishops,
			Rook:   bbs.Rooks,
			Queen:  bbs.Queens,
			King:   bbs.Kings,
		} {
			for set := Bitboard(bb); set != 0; {
				b.Put(c, pt, set.PopLowest())
			}
		}
	}
	place(White, dt.White)
	place(Black, dt.Black)
	if err := b.Validate(); err != nil {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: %v", fen, err)
	}
	if !dt.Wtomove {
		b.sideToMove = Black
	}

	for _, ch := range fields[2] {
		switch ch {
		case 'K':
			b.castlingRights |= CastleWhiteK
		case 'Q':
			b.castlingRights |= CastleWhiteQ
		case 'k':
			b.castlingRights |= CastleBlackK
		case 'q':
			b.castlingRights |= CastleBlackQ
		case '-':
		default:
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: bad castling field", fen)
		}
	}
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: %v", fen, err)
		}
		if !b.enPassantCapturable(b.sideToMove, sq) {
			return nil, errors.Wrapf(ErrInvalidFEN, "%q: no double push behind en-passant square %s", fen, sq)
		}
		b.enPassantSquare = sq
	}
	if b.halfmoveClock, err = strconv.Atoi(fields[4]); err != nil {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: halfmove clock", fen)
	}
	if b.fullmoveNumber, err = strconv.Atoi(fields[5]); err != nil {
		return nil, errors.Wrapf(ErrInvalidFEN, "%q: fullmove number", fen)
	}
	b.Rehash()
	return b, nil
}

// MustFromFEN is FromFEN that panics on invalid input.
func MustFromFEN(fen string) *Board {
	b, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// FEN renders the board as a FEN string.
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		gap := 0
		for f := 0; f < 8; f++ {
			c, pt, ok := b.PieceAt(SquareAt(f, r))
			if !ok {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteString(strconv.Itoa(gap))
				gap = 0
			}
			ch := pt.Letter()
			if c == White {
				ch -= 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if gap > 0 {
			sb.WriteString(strconv.Itoa(gap))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	side := " w "
	if b.sideToMove == Black {
		side = " b "
	}
	sb.WriteString(side)
	sb.WriteString(b.castlingRights.String())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassantSquare.String())
	sb.WriteString(" " + strconv.Itoa(b.halfmoveClock) + " " + strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}
