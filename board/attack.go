package board

// Attack detection. All of these walk the mailbox outward from the target
// square; sentinel cells terminate rays without explicit bounds checks.

// InCheck reports whether the given side's king is attacked.
func (b *Board) InCheck(c Color) bool {
	ksq := b.pieceList.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return b.IsSquareAttacked(ksq, c.Opposite())
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedIgnoring(sq, by, NoSquare)
}

// isSquareAttackedIgnoring is IsSquareAttacked with one square treated as
// empty. King move legality needs this: when the king steps along a checking
// ray, the vacated square must not shield the destination from the slider.
func (b *Board) isSquareAttackedIgnoring(sq Square, by Color, ignore Square) bool {
	// Pawns. A pawn of color by attacks sq from one step backwards along its
	// own push direction, one file to either side.
	pawn := PieceFromType(by, PieceTypePawn)
	back := -pawnForward(by)
	if b.squares[sq+back+dirE] == pawn || b.squares[sq+back+dirW] == pawn {
		return true
	}

	// Knights.
	knight := PieceFromType(by, PieceTypeKnight)
	for _, jump := range knightJumps {
		if b.squares[sq+jump] == knight {
			return true
		}
	}

	// King.
	king := PieceFromType(by, PieceTypeKing)
	for _, dir := range kingDirs {
		if b.squares[sq+dir] == king {
			return true
		}
	}

	// Sliders: walk each ray until the first occupied cell and test whether it
	// holds a matching slider of color by.
	queen := PieceFromType(by, PieceTypeQueen)
	rook := PieceFromType(by, PieceTypeRook)
	for _, dir := range rookDirs {
		if p := b.firstAlongRay(sq, dir, ignore); p == rook || p == queen {
			return true
		}
	}
	bishop := PieceFromType(by, PieceTypeBishop)
	for _, dir := range bishopDirs {
		if p := b.firstAlongRay(sq, dir, ignore); p == bishop || p == queen {
			return true
		}
	}
	return false
}

// firstAlongRay returns the first piece (or Sentinel) encountered stepping
// from sq in direction dir, skipping over the ignore square.
func (b *Board) firstAlongRay(sq, dir, ignore Square) Piece {
	for cur := sq + dir; ; cur += dir {
		if cur == ignore {
			continue
		}
		if p := b.squares[cur]; p != NoPiece {
			return p
		}
	}
}

// attackersOf returns the squares of all pieces of color by that attack sq.
// Move generation uses this to count checkers and locate them for evasions.
func (b *Board) attackersOf(sq Square, by Color) []Square {
	var attackers []Square

	pawn := PieceFromType(by, PieceTypePawn)
	back := -pawnForward(by)
	for _, side := range [2]Square{dirE, dirW} {
		if from := sq + back + side; b.squares[from] == pawn {
			attackers = append(attackers, from)
		}
	}

	knight := PieceFromType(by, PieceTypeKnight)
	for _, jump := range knightJumps {
		if from := sq + jump; b.squares[from] == knight {
			attackers = append(attackers, from)
		}
	}

	king := PieceFromType(by, PieceTypeKing)
	for _, dir := range kingDirs {
		if from := sq + dir; b.squares[from] == king {
			attackers = append(attackers, from)
		}
	}

	queen := PieceFromType(by, PieceTypeQueen)
	rook := PieceFromType(by, PieceTypeRook)
	for _, dir := range rookDirs {
		for cur := sq + dir; ; cur += dir {
			p := b.squares[cur]
			if p == NoPiece {
				continue
			}
			if p == rook || p == queen {
				attackers = append(attackers, cur)
			}
			break
		}
	}
	bishop := PieceFromType(by, PieceTypeBishop)
	for _, dir := range bishopDirs {
		for cur := sq + dir; ; cur += dir {
			p := b.squares[cur]
			if p == NoPiece {
				continue
			}
			if p == bishop || p == queen {
				attackers = append(attackers, cur)
			}
			break
		}
	}
	return attackers
}

// directionBetween returns the unit mailbox step from a towards b if the two
// squares share a rank, file or diagonal, otherwise 0.
func directionBetween(a, b Square) Square {
	df := b.File() - a.File()
	dr := b.Rank() - a.Rank()
	switch {
	case df == 0 && dr == 0:
		return 0
	case df == 0:
		if dr > 0 {
			return dirN
		}
		return dirS
	case dr == 0:
		if df > 0 {
			return dirE
		}
		return dirW
	case df == dr:
		if df > 0 {
			return dirNE
		}
		return dirSW
	case df == -dr:
		if df > 0 {
			return dirSE
		}
		return dirNW
	default:
		return 0
	}
}

// squaresBetween returns the open squares strictly between a and b, which must
// be aligned; it returns nil for unaligned or adjacent squares.
func squaresBetween(a, b Square) []Square {
	dir := directionBetween(a, b)
	if dir == 0 {
		return nil
	}
	var between []Square
	for cur := a + dir; cur != b; cur += dir {
		between = append(between, cur)
	}
	return between
}
