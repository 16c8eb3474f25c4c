package bitmg

// Policy selects which targets a generator keeps.
type Policy uint8

const (
	// Quiet keeps moves onto empty squares.
	Quiet Policy = 1 << iota
	// Captures keeps moves onto enemy pieces (and en passant).
	Captures

	AllMoves = Quiet | Captures
)

// stepper is one variant of the table-driven generator used for pieces whose
// targets do not depend on occupancy: king, knight and the pawn moves.
type stepper struct {
	pt      PieceType
	policy  Policy // the only target class this variant produces
	promote bool
	targets func(c Color, sq Square) Bitboard
}

var (
	kingStepper   = stepper{pt: King, policy: AllMoves, targets: func(_ Color, sq Square) Bitboard { return attacks.king[sq] }}
	knightStepper = stepper{pt: Knight, policy: AllMoves, targets: func(_ Color, sq Square) Bitboard { return attacks.knight[sq] }}

	pawnPushStepper = stepper{pt: Pawn, policy: Quiet, targets: func(c Color, sq Square) Bitboard {
		return attacks.pawnPush[c][sq]
	}}
	pawnCaptureStepper = stepper{pt: Pawn, policy: Captures, targets: func(c Color, sq Square) Bitboard {
		return attacks.pawnCapture[c][sq]
	}}
	pawnPromoPushStepper = stepper{pt: Pawn, policy: Quiet, promote: true, targets: func(c Color, sq Square) Bitboard {
		return attacks.pawnPromoPush[c][sq]
	}}
	pawnPromoCaptureStepper = stepper{pt: Pawn, policy: Captures, promote: true, targets: func(c Color, sq Square) Bitboard {
		return attacks.pawnPromoCapture[c][sq]
	}}
)

// promotion order: Q R B N
var promotions = [4]PieceType{Queen, Rook, Bishop, Knight}

// genSteppers appends the legal moves of every us piece of type s.pt using
// the stepper's table, masked per policy to empty squares or enemy pieces.
func (b *Board) genSteppers(l *MoveList, us Color, s stepper, policy Policy) {
	policy &= s.policy
	if policy == 0 {
		return
	}
	var mask Bitboard
	if policy&Quiet != 0 {
		mask |= b.empty
	}
	if policy&Captures != 0 {
		mask |= b.allPieces[us.Other()]
	}
	for movers := b.PiecesOf(us, s.pt); movers != 0; {
		from := movers.PopLowest()
		for targets := s.targets(us, from) & mask; targets != 0; {
			to := targets.PopLowest()
			flag := FlagNone
			if s.pt == Pawn && s.policy == Quiet && !s.promote {
				if int(to)-int(from) == 16 || int(from)-int(to) == 16 {
					// the skipped square must be empty too
					if !b.empty.Has((from + to) / 2) {
						continue
					}
					flag = FlagDoublePush
				}
			}
			captured := NoPieceType
			if b.allPieces[us.Other()].Has(to) {
				_, captured, _ = b.PieceAt(to)
			}
			if s.promote {
				for _, promo := range promotions {
					b.addIfLegal(l, us, NewMove(from, to, s.pt, captured, promo, flag))
				}
				continue
			}
			b.addIfLegal(l, us, NewMove(from, to, s.pt, captured, NoPieceType, flag))
		}
	}
}

// genSliders appends the legal moves of us pieces of type pt (bishop, rook or
// queen) through the occupancy-indexed tables.
func (b *Board) genSliders(l *MoveList, us Color, pt PieceType, policy Policy) {
	var mask Bitboard
	if policy&Quiet != 0 {
		mask |= b.empty
	}
	if policy&Captures != 0 {
		mask |= b.allPieces[us.Other()]
	}
	occ := b.Occupancy()
	for movers := b.PiecesOf(us, pt); movers != 0; {
		from := movers.PopLowest()
		var targets Bitboard
		switch pt {
		case Bishop:
			targets = BishopAttacks(from, occ)
		case Rook:
			targets = RookAttacks(from, occ)
		default:
			targets = QueenAttacks(from, occ)
		}
		for targets &= mask; targets != 0; {
			to := targets.PopLowest()
			captured := NoPieceType
			if b.allPieces[us.Other()].Has(to) {
				_, captured, _ = b.PieceAt(to)
			}
			b.addIfLegal(l, us, NewMove(from, to, pt, captured, NoPieceType, FlagNone))
		}
	}
}

// genEnPassant appends the en-passant captures available to us.
func (b *Board) genEnPassant(l *MoveList, us Color) {
	ep := b.enPassantSquare
	if ep == NoSquare || us != b.sideToMove || !b.enPassantCapturable(us, ep) {
		return
	}
	// pawns that attack ep are the ones an enemy pawn on ep would attack
	for movers := PawnAttacks(us.Other(), ep) & b.PiecesOf(us, Pawn); movers != 0; {
		from := movers.PopLowest()
		b.addIfLegal(l, us, NewMove(from, ep, Pawn, Pawn, NoPieceType, FlagEnPassant))
	}
}

// enPassantCaptureRank is the rank index of the target square us may capture
// onto: the sixth rank for White, the third for Black.
func enPassantCaptureRank(us Color) int {
	if us == White {
		return 5
	}
	return 2
}

// enPassantCapturable reports whether ep is a target a double push by the
// opponent could have left: on us's capture rank, empty, with the pushed
// enemy pawn directly behind it.
func (b *Board) enPassantCapturable(us Color, ep Square) bool {
	return ep.Rank() == enPassantCaptureRank(us) &&
		!b.Occupancy().Has(ep) &&
		b.PiecesOf(us.Other(), Pawn).Has(ep^8)
}

type castleRule struct {
	right    CastlingRights
	king     Square
	to       Square
	rook     Square
	empty    Bitboard
	safe     [3]Square // king start, transit and destination
	kingSide bool
}

var castleRules = [2][2]castleRule{
	White: {
		{right: CastleWhiteK, king: E1, to: G1, rook: H1, empty: SquareBB(F1) | SquareBB(G1), safe: [3]Square{E1, F1, G1}, kingSide: true},
		{right: CastleWhiteQ, king: E1, to: C1, rook: A1, empty: SquareBB(B1) | SquareBB(C1) | SquareBB(D1), safe: [3]Square{E1, D1, C1}},
	},
	Black: {
		{right: CastleBlackK, king: E8, to: G8, rook: H8, empty: SquareBB(F8) | SquareBB(G8), safe: [3]Square{E8, F8, G8}, kingSide: true},
		{right: CastleBlackQ, king: E8, to: C8, rook: A8, empty: SquareBB(B8) | SquareBB(C8) | SquareBB(D8), safe: [3]Square{E8, D8, C8}},
	},
}

// castleRookMove returns the rook's from/to squares for a castling king move.
func castleRookMove(kingTo Square) (Square, Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	default:
		return A8, D8
	}
}

// genCastles appends the castling moves available to us.
func (b *Board) genCastles(l *MoveList, us Color) {
	for _, r := range castleRules[us] {
		if b.castlingRights&r.right == 0 ||
			!b.PiecesOf(us, King).Has(r.king) ||
			!b.PiecesOf(us, Rook).Has(r.rook) ||
			b.empty&r.empty != r.empty {
			continue
		}
		attacked := false
		for _, sq := range r.safe {
			if b.Attacked(sq, us.Other()) {
				attacked = true
				break
			}
		}
		if !attacked {
			l.push(NewMove(r.king, r.to, King, NoPieceType, NoPieceType, FlagCastle))
		}
	}
}

// addIfLegal appends m when it does not leave the mover's king attacked.
func (b *Board) addIfLegal(l *MoveList, us Color, m Move) {
	if b.Position.leavesKingSafe(us, m) {
		l.push(m)
	}
}

// leavesKingSafe plays m on the placement bitboards, tests whether us's king
// is attacked by any enemy piece and restores the placement.
func (p *Position) leavesKingSafe(us Color, m Move) bool {
	from, to := m.From(), m.To()
	them := us.Other()

	capSq := to
	if m.Flags()&FlagEnPassant != 0 {
		capSq = to ^ 8 // the pawn beside the mover, on the mover's rank
	}
	captured := m.Captured()
	if captured != NoPieceType {
		p.Remove(them, captured, capSq)
	}
	promo := m.Promotion()
	if promo != NoPieceType {
		p.Remove(us, m.Piece(), from)
		p.Put(us, promo, to)
	} else {
		p.MovePiece(us, m.Piece(), from, to)
	}

	ks := p.KingSquare(us)
	safe := ks == NoSquare || !p.Attacked(ks, them)

	if promo != NoPieceType {
		p.Remove(us, promo, to)
		p.Put(us, m.Piece(), from)
	} else {
		p.MovePiece(us, m.Piece(), to, from)
	}
	if captured != NoPieceType {
		p.Put(them, captured, capSq)
	}
	return safe
}

// GenerateByType appends to l the legal moves of c's pieces of type pt that
// match policy. Castling is generated with the king, en passant with pawns.
func (b *Board) GenerateByType(l *MoveList, c Color, pt PieceType, policy Policy) {
	l.terminate()
	switch pt {
	case King:
		b.genSteppers(l, c, kingStepper, policy)
		if policy&Quiet != 0 {
			b.genCastles(l, c)
		}
	case Knight:
		b.genSteppers(l, c, knightStepper, policy)
	case Pawn:
		b.genSteppers(l, c, pawnPushStepper, policy)
		b.genSteppers(l, c, pawnPromoPushStepper, policy)
		b.genSteppers(l, c, pawnCaptureStepper, policy)
		b.genSteppers(l, c, pawnPromoCaptureStepper, policy)
		if policy&Captures != 0 {
			b.genEnPassant(l, c)
		}
	case Bishop, Rook, Queen:
		b.genSliders(l, c, pt, policy)
	}
}

func (b *Board) generate(l *MoveList, policy Policy) {
	l.Reset()
	for pt := Pawn; pt < numPieceTypes; pt++ {
		b.GenerateByType(l, b.sideToMove, pt, policy)
	}
}

// Generate fills l with every legal move for the side to move.
func (b *Board) Generate(l *MoveList) { b.generate(l, AllMoves) }

// GenerateCaptures fills l with the legal captures (promotion captures and
// en passant included).
func (b *Board) GenerateCaptures(l *MoveList) { b.generate(l, Captures) }

// GenerateQuiets fills l with the legal non-captures (castling and quiet
// promotions included).
func (b *Board) GenerateQuiets(l *MoveList) { b.generate(l, Quiet) }

// Moves returns the legal moves for the side to move as a fresh slice.
func (b *Board) Moves() []Move {
	var l MoveList
	b.Generate(&l)
	out := make([]Move, l.Len())
	copy(out, l.Slice())
	return out
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var l MoveList
	b.Generate(&l)
	return l.Len() > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}
