package engine

import "github.com/miklz/enrust/board"

// Material values in centipawns. The king value dwarfs everything else so a
// material sum can never look better than saving the king, but mate itself is
// scored by the search, not the evaluator.
var pieceValue = [7]int{
	0,     // none
	100,   // pawn
	300,   // knight
	300,   // bishop
	500,   // rook
	900,   // queen
	20000, // king
}

// PieceValue returns the material value of a piece kind in centipawns.
func PieceValue(pt board.PieceType) int {
	return pieceValue[pt]
}

// Evaluate scores the position by material count, from the perspective of the
// side to move: positive means the side to move is ahead. Negamax relies on
// this symmetry, so Evaluate(pos) == -Evaluate(pos with sides swapped).
func Evaluate(b *board.Board) int {
	score := 0
	for pt := board.PieceTypePawn; pt <= board.PieceTypeKing; pt++ {
		diff := b.Count(board.White, pt) - b.Count(board.Black, pt)
		score += diff * pieceValue[pt]
	}
	if b.SideToMove() == board.Black {
		return -score
	}
	return score
}
