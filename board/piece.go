package board

// Movement geometry. The piece set is closed, so geometry is resolved through
// fixed direction tables keyed on PieceType rather than dynamic dispatch.
//
// Directions are mailbox index offsets: one rank up is +boardWidth, one file
// right is +1. Stepping off the playable area always lands on a Sentinel cell.
const (
	dirN = boardWidth
	dirS = -boardWidth
	dirE = 1
	dirW = -1

	dirNE = dirN + dirE
	dirNW = dirN + dirW
	dirSE = dirS + dirE
	dirSW = dirS + dirW
)

var (
	rookDirs   = [4]Square{dirN, dirS, dirE, dirW}
	bishopDirs = [4]Square{dirNE, dirNW, dirSE, dirSW}
	queenDirs  = [8]Square{dirN, dirS, dirE, dirW, dirNE, dirNW, dirSE, dirSW}
	kingDirs   = [8]Square{dirN, dirS, dirE, dirW, dirNE, dirNW, dirSE, dirSW}

	knightJumps = [8]Square{-2*boardWidth - 1, -2*boardWidth + 1,
		-boardWidth - 2, -boardWidth + 2,
		boardWidth - 2, boardWidth + 2,
		2*boardWidth - 1, 2*boardWidth + 1}
)

// sliderDirs returns the slide directions of a sliding piece type, or nil for
// leapers and pawns.
func sliderDirs(pt PieceType) []Square {
	switch pt {
	case PieceTypeRook:
		return rookDirs[:]
	case PieceTypeBishop:
		return bishopDirs[:]
	case PieceTypeQueen:
		return queenDirs[:]
	default:
		return nil
	}
}

// pawnForward returns the push direction of a side's pawns.
func pawnForward(c Color) Square {
	if c == White {
		return dirN
	}
	return dirS
}

// pawnStartRank returns the rank (0-7) pawns of a side start on.
func pawnStartRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

// pawnPromoRank returns the rank (0-7) on which a side's pawns promote.
func pawnPromoRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

// promotionTargets lists the piece kinds a pawn may promote to, in the fixed
// order the generator emits them.
var promotionTargets = [4]PieceType{
	PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight,
}

func (pt PieceType) String() string {
	switch pt {
	case PieceTypePawn:
		return "pawn"
	case PieceTypeKnight:
		return "knight"
	case PieceTypeBishop:
		return "bishop"
	case PieceTypeRook:
		return "rook"
	case PieceTypeQueen:
		return "queen"
	case PieceTypeKing:
		return "king"
	default:
		return "none"
	}
}
