package board

// Legal move generation.
//
// The generator emits only legal moves. Rather than generating pseudo-legal
// moves and filtering them with make/unmake, it restricts generation up front:
//
//   - King moves are tested against enemy attacks directly, with the king's
//     own square treated as empty so stepping along a checking ray is caught.
//   - Absolutely pinned pieces are detected by walking the eight rays from the
//     king; a pinned piece may only move along its pin ray.
//   - In check, non-king moves must capture the checker or block its ray; in
//     double check only the king may move.
//
// The one exception is en passant, whose discovered-check geometry (two pawns
// leaving a rank at once) is cheaper to verify by briefly making the move.

// moveFilter carries the pin and check-evasion constraints for the pieces of
// the side to move.
type moveFilter struct {
	// pins maps a pinned piece's square to its set of allowed destinations:
	// the squares along the pin ray plus the pinning piece itself.
	pins map[Square]map[Square]bool

	// evasion is non-nil when the king is in single check and holds the only
	// destinations that resolve it for non-king pieces: the checker's square
	// and, for a sliding checker, the squares between it and the king.
	evasion map[Square]bool
}

// ok reports whether a non-king move from->to satisfies the pin and evasion
// constraints. A pinned piece can never resolve a check by moving along its
// pin ray, so in check pinned pieces generate nothing.
func (f *moveFilter) ok(from, to Square) bool {
	if allowed, pinned := f.pins[from]; pinned && !allowed[to] {
		return false
	}
	if f.evasion != nil && !f.evasion[to] {
		return false
	}
	return true
}

// GenerateMoves returns all legal moves for the side to move. A position with
// no legal moves is checkmate or stalemate depending on InCheck.
func (b *Board) GenerateMoves() []Move {
	return b.GenerateMovesInto(make([]Move, 0, 48))
}

// GenerateMovesInto appends all legal moves for the side to move to moves and
// returns the extended slice. It allocates nothing beyond the slice growth
// when the position is not in check.
func (b *Board) GenerateMovesInto(moves []Move) []Move {
	us := b.sideToMove
	them := us.Opposite()
	ksq := b.pieceList.KingSquare(us)

	checkers := b.attackersOf(ksq, them)

	moves = b.genKingMoves(moves, ksq, us, them)
	if len(checkers) >= 2 {
		// Double check: only the king can move.
		return moves
	}

	var filter moveFilter
	if len(checkers) == 1 {
		checker := checkers[0]
		filter.evasion = map[Square]bool{checker: true}
		if sliderDirs(typeOf(b.squares[checker])) != nil {
			for _, sq := range squaresBetween(ksq, checker) {
				filter.evasion[sq] = true
			}
		}
	} else {
		// Castling is never an evasion.
		moves = b.genCastling(moves, us, them)
	}
	filter.pins = b.computePins(ksq, us, them)

	for _, pt := range [3]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop} {
		for _, from := range b.pieceList.SquaresOf(us, pt) {
			moves = b.genSliderMoves(moves, from, pt, us, &filter)
		}
	}
	for _, from := range b.pieceList.SquaresOf(us, PieceTypeKnight) {
		moves = b.genKnightMoves(moves, from, us, &filter)
	}
	for _, from := range b.pieceList.SquaresOf(us, PieceTypePawn) {
		moves = b.genPawnMoves(moves, from, us, them, &filter)
	}
	return moves
}

// computePins finds the absolutely pinned pieces of color us by walking the
// eight rays outward from the king. A piece is pinned when it is the only one
// between the king and an enemy slider that moves along that ray.
func (b *Board) computePins(ksq Square, us, them Color) map[Square]map[Square]bool {
	var pins map[Square]map[Square]bool
	for _, dir := range queenDirs {
		shield := NoSquare
		for cur := ksq + dir; ; cur += dir {
			p := b.squares[cur]
			if p == NoPiece {
				continue
			}
			if p == Sentinel {
				break
			}
			if colorOf(p) == us {
				if shield != NoSquare {
					// Two friendly pieces on the ray: neither is pinned.
					break
				}
				shield = cur
				continue
			}
			// First enemy piece on the ray.
			if shield != NoSquare && sliderAlong(p, dir) {
				allowed := map[Square]bool{cur: true}
				for sq := ksq + dir; sq != cur; sq += dir {
					allowed[sq] = true
				}
				if pins == nil {
					pins = make(map[Square]map[Square]bool)
				}
				pins[shield] = allowed
			}
			break
		}
	}
	return pins
}

// sliderAlong reports whether piece p slides in direction dir.
func sliderAlong(p Piece, dir Square) bool {
	orthogonal := dir == dirN || dir == dirS || dir == dirE || dir == dirW
	switch typeOf(p) {
	case PieceTypeQueen:
		return true
	case PieceTypeRook:
		return orthogonal
	case PieceTypeBishop:
		return !orthogonal
	default:
		return false
	}
}

func (b *Board) genKingMoves(moves []Move, ksq Square, us, them Color) []Move {
	king := PieceFromType(us, PieceTypeKing)
	for _, dir := range kingDirs {
		to := ksq + dir
		target := b.squares[to]
		if target == Sentinel || (target != NoPiece && colorOf(target) == us) {
			continue
		}
		// The king's own square is treated as empty so that a king in check
		// cannot "hide" behind its current square along the checking ray.
		if b.isSquareAttackedIgnoring(to, them, ksq) {
			continue
		}
		moves = append(moves, NewMove(ksq, to, king, target, NoPiece, FlagNone))
	}
	return moves
}

// genCastling emits castle moves. The caller only invokes it when the king is
// not in check; this checks rights, rook presence, empty squares between, and
// that the king's transit squares are not attacked.
func (b *Board) genCastling(moves []Move, us, them Color) []Move {
	king := PieceFromType(us, PieceTypeKing)
	rook := PieceFromType(us, PieceTypeRook)

	type castleSide struct {
		right            CastlingRights
		kingFrom, kingTo Square
		rookFrom         Square
		empty            []Square
		safe             []Square
	}
	var sides [2]castleSide
	if us == White {
		sides = [2]castleSide{
			{CastlingWhiteK, E1, G1, H1, []Square{F1, G1}, []Square{F1, G1}},
			{CastlingWhiteQ, E1, C1, A1, []Square{D1, C1, B1}, []Square{D1, C1}},
		}
	} else {
		sides = [2]castleSide{
			{CastlingBlackK, E8, G8, H8, []Square{F8, G8}, []Square{F8, G8}},
			{CastlingBlackQ, E8, C8, A8, []Square{D8, C8, B8}, []Square{D8, C8}},
		}
	}

	for _, cs := range sides {
		if b.castlingRights&cs.right == 0 {
			continue
		}
		if b.squares[cs.kingFrom] != king || b.squares[cs.rookFrom] != rook {
			continue
		}
		ok := true
		for _, sq := range cs.empty {
			if b.squares[sq] != NoPiece {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, sq := range cs.safe {
			if b.IsSquareAttacked(sq, them) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		moves = append(moves, NewMove(cs.kingFrom, cs.kingTo, king, NoPiece, NoPiece, FlagCastle))
	}
	return moves
}

func (b *Board) genSliderMoves(moves []Move, from Square, pt PieceType, us Color, f *moveFilter) []Move {
	piece := PieceFromType(us, pt)
	for _, dir := range sliderDirs(pt) {
		for to := from + dir; ; to += dir {
			target := b.squares[to]
			if target == Sentinel {
				break
			}
			if target == NoPiece {
				if f.ok(from, to) {
					moves = append(moves, NewMove(from, to, piece, NoPiece, NoPiece, FlagNone))
				}
				continue
			}
			if colorOf(target) != us && f.ok(from, to) {
				moves = append(moves, NewMove(from, to, piece, target, NoPiece, FlagNone))
			}
			break
		}
	}
	return moves
}

func (b *Board) genKnightMoves(moves []Move, from Square, us Color, f *moveFilter) []Move {
	knight := PieceFromType(us, PieceTypeKnight)
	for _, jump := range knightJumps {
		to := from + jump
		target := b.squares[to]
		if target == Sentinel || (target != NoPiece && colorOf(target) == us) {
			continue
		}
		// A pinned knight can never stay on its pin ray, so the filter
		// rejects all of its moves.
		if !f.ok(from, to) {
			continue
		}
		moves = append(moves, NewMove(from, to, knight, target, NoPiece, FlagNone))
	}
	return moves
}

func (b *Board) genPawnMoves(moves []Move, from Square, us, them Color, f *moveFilter) []Move {
	pawn := PieceFromType(us, PieceTypePawn)
	forward := pawnForward(us)
	promoRank := pawnPromoRank(us)

	// Pushes.
	one := from + forward
	if b.squares[one] == NoPiece {
		if f.ok(from, one) {
			if one.Rank() == promoRank {
				moves = b.appendPromotions(moves, from, one, pawn, NoPiece)
			} else {
				moves = append(moves, NewMove(from, one, pawn, NoPiece, NoPiece, FlagNone))
			}
		}
		if from.Rank() == pawnStartRank(us) {
			two := one + forward
			if b.squares[two] == NoPiece && f.ok(from, two) {
				moves = append(moves, NewMove(from, two, pawn, NoPiece, NoPiece, FlagDoublePush))
			}
		}
	}

	// Captures, including en passant.
	for _, side := range [2]Square{dirE, dirW} {
		to := from + forward + side
		target := b.squares[to]
		if target != NoPiece && target != Sentinel && colorOf(target) == them {
			if f.ok(from, to) {
				if to.Rank() == promoRank {
					moves = b.appendPromotions(moves, from, to, pawn, target)
				} else {
					moves = append(moves, NewMove(from, to, pawn, target, NoPiece, FlagNone))
				}
			}
			continue
		}
		if to == b.enPassantSquare {
			// En passant removes a piece from a third square, so pin and
			// evasion masks do not cover it. Verify by making the move and
			// testing for check, then undoing it.
			m := NewMove(from, to, pawn, PieceFromType(them, PieceTypePawn), NoPiece, FlagEnPassant)
			st := b.MakeMove(m)
			legal := !b.InCheck(us)
			b.UnmakeMove(st)
			if legal {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func (b *Board) appendPromotions(moves []Move, from, to Square, pawn, captured Piece) []Move {
	us := colorOf(pawn)
	for _, pt := range promotionTargets {
		moves = append(moves, NewMove(from, to, pawn, captured, PieceFromType(us, pt), FlagNone))
	}
	return moves
}
