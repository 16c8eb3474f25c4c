package bitmg

// Board edges used to trim relevant-occupancy masks.
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
	Rank1 Bitboard = 0xFF
	Rank8 Bitboard = Rank1 << 56

	edges = FileA | FileH | Rank1 | Rank8
)

// attackTables holds every precomputed mask. It is built once by
// newAttackTables and never written afterwards.
type attackTables struct {
	rank     [64]Bitboard
	file     [64]Bitboard
	rankFile [64]Bitboard
	diagonal [64]Bitboard

	king   [64]Bitboard
	knight [64]Bitboard

	// Pawn pushes and captures that stay off the promotion rank.
	pawnPush    [2][64]Bitboard
	pawnCapture [2][64]Bitboard
	// Pushes and captures that land on the promotion rank.
	pawnPromoPush    [2][64]Bitboard
	pawnPromoCapture [2][64]Bitboard
	// Every square a pawn attacks, promotion rank included.
	pawnAttack [2][64]Bitboard

	rookRelevant   [64]Bitboard
	bishopRelevant [64]Bitboard
	rookOffset     [64]int
	bishopOffset   [64]int
	rookTable      []Bitboard
	bishopTable    []Bitboard
}

var attacks = newAttackTables()

// walk steps from sq in direction d, collecting squares until the board edge
// or the first square in stop (which is included).
func walk(sq Square, d Direction, stop Bitboard) Bitboard {
	var ray Bitboard
	for s := Neighbor(sq, d); s != OffBoard; s = Neighbor(s, d) {
		ray |= SquareBB(s)
		if stop.Has(s) {
			break
		}
	}
	return ray
}

// step ORs the single neighbor of sq in each direction.
func step(sq Square, dirs []Direction) Bitboard {
	var bb Bitboard
	for _, d := range dirs {
		if n := Neighbor(sq, d); n != OffBoard {
			bb |= SquareBB(n)
		}
	}
	return bb
}

func newAttackTables() *attackTables {
	t := &attackTables{}
	for sq := Square(0); sq < 64; sq++ {
		t.rank[sq] = walk(sq, East, 0) | walk(sq, West, 0)
		t.file[sq] = walk(sq, North, 0) | walk(sq, South, 0)
		t.rankFile[sq] = t.rank[sq] | t.file[sq]
		for _, d := range bishopDirections {
			t.diagonal[sq] |= walk(sq, d, 0)
		}
		t.king[sq] = step(sq, kingDirections[:])
		t.knight[sq] = step(sq, knightDirections[:])

		t.rookRelevant[sq] = (t.rank[sq]&^(FileA|FileH) | t.file[sq]&^(Rank1|Rank8)) &^ SquareBB(sq)
		t.bishopRelevant[sq] = t.diagonal[sq] &^ edges &^ SquareBB(sq)
	}
	t.initPawns()
	t.rookTable = buildSliderTable(&t.rookRelevant, &t.rookOffset, rookDirections)
	t.bishopTable = buildSliderTable(&t.bishopRelevant, &t.bishopOffset, bishopDirections)
	return t
}

func (t *attackTables) initPawns() {
	forward := [2]Direction{North, South}
	captures := [2][]Direction{{NorthWest, NorthEast}, {SouthWest, SouthEast}}
	startRank := [2]Bitboard{Rank1 << 8, Rank8 >> 8}
	promoRank := [2]Bitboard{Rank8, Rank1}

	for c := White; c <= Black; c++ {
		for sq := Square(0); sq < 64; sq++ {
			var push Bitboard
			if one := Neighbor(sq, forward[c]); one != OffBoard {
				push = SquareBB(one)
				if startRank[c].Has(sq) {
					push |= SquareBB(Neighbor(one, forward[c]))
				}
			}
			capt := step(sq, captures[c])

			t.pawnPush[c][sq] = push &^ promoRank[c]
			t.pawnPromoPush[c][sq] = push & promoRank[c]
			t.pawnCapture[c][sq] = capt &^ promoRank[c]
			t.pawnPromoCapture[c][sq] = capt & promoRank[c]
			t.pawnAttack[c][sq] = capt
		}
	}
}

// buildSliderTable fills one flat table holding, for every square, the
// attack set of every subset of its relevant mask.
func buildSliderTable(relevant *[64]Bitboard, offset *[64]int, dirs [4]Direction) []Bitboard {
	size := 0
	for sq := 0; sq < 64; sq++ {
		offset[sq] = size
		size += 1 << relevant[sq].PopCount()
	}
	table := make([]Bitboard, size)
	for sq := Square(0); sq < 64; sq++ {
		mask := relevant[sq]
		n := uint64(1) << mask.PopCount()
		for idx := uint64(0); idx < n; idx++ {
			occ := Scatter(idx, mask)
			var att Bitboard
			for _, d := range dirs {
				att |= walk(sq, d, occ)
			}
			table[offset[sq]+int(idx)] = att
		}
	}
	return table
}

// KingAttacks returns the king-step targets from sq.
func KingAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return attacks.king[sq]
}

// KnightAttacks returns the knight-leap targets from sq.
func KnightAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return attacks.knight[sq]
}

// PawnPushes returns the single and double push targets of a c pawn on sq,
// excluding the promotion rank.
func PawnPushes(c Color, sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return attacks.pawnPush[c&1][sq]
}

// PawnCaptures returns the capture targets of a c pawn on sq, excluding the
// promotion rank.
func PawnCaptures(c Color, sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return attacks.pawnCapture[c&1][sq]
}

// PawnAttacks returns every square a c pawn on sq attacks.
func PawnAttacks(c Color, sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return attacks.pawnAttack[c&1][sq]
}

// RookAttacks looks up the rook attack set from sq for the given occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	if !sq.Valid() {
		return 0
	}
	t := attacks
	return t.rookTable[t.rookOffset[sq]+int(Gather(occ, t.rookRelevant[sq]))]
}

// BishopAttacks looks up the bishop attack set from sq for the given occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	if !sq.Valid() {
		return 0
	}
	t := attacks
	return t.bishopTable[t.bishopOffset[sq]+int(Gather(occ, t.bishopRelevant[sq]))]
}

// QueenAttacks is the union of the rook and bishop lookups.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// RankMask returns the rest of sq's rank.
func RankMask(sq Square) Bitboard { return staticMask(&attacks.rank, sq) }

// FileMask returns the rest of sq's file.
func FileMask(sq Square) Bitboard { return staticMask(&attacks.file, sq) }

// RankFileMask returns the empty-board rook reach from sq.
func RankFileMask(sq Square) Bitboard { return staticMask(&attacks.rankFile, sq) }

// DiagonalMask returns the empty-board bishop reach from sq.
func DiagonalMask(sq Square) Bitboard { return staticMask(&attacks.diagonal, sq) }

// RookRelevant returns the squares whose occupancy changes a rook's attacks.
func RookRelevant(sq Square) Bitboard { return staticMask(&attacks.rookRelevant, sq) }

// BishopRelevant returns the squares whose occupancy changes a bishop's attacks.
func BishopRelevant(sq Square) Bitboard { return staticMask(&attacks.bishopRelevant, sq) }

func staticMask(t *[64]Bitboard, sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return t[sq]
}
