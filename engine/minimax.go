package engine

import "github.com/miklz/enrust/board"

// Plain negamax without pruning. Alpha-beta with the strict ">" update rule
// must select the same move with the same score as this search at equal depth,
// which the tests assert on a spread of positions. It is far too slow for
// play; it exists purely as an oracle.
func minimax(b *board.Board, depth, ply int) int {
	if depth <= 0 {
		return Evaluate(b)
	}
	moves := b.GenerateMoves()
	if len(moves) == 0 {
		if b.InCheck(b.SideToMove()) {
			return -(MateScore - ply)
		}
		return 0
	}
	best := -Infinity
	for _, m := range moves {
		st := b.MakeMove(m)
		score := -minimax(b, depth-1, ply+1)
		b.UnmakeMove(st)
		if score > best {
			best = score
		}
	}
	return best
}

// MinimaxSearch picks the best root move by exhaustive tree walk at a fixed
// depth. Ties keep the first move in generation order, matching Search.
func MinimaxSearch(b *board.Board, depth int) (board.Move, int) {
	bestMove := board.NoMove
	bestScore := -Infinity
	for _, m := range b.GenerateMoves() {
		st := b.MakeMove(m)
		score := -minimax(b, depth-1, 1)
		b.UnmakeMove(st)
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
	}
	return bestMove, bestScore
}
