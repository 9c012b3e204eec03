package engine

import (
	"sync/atomic"
	"time"

	"github.com/miklz/enrust/board"
)

// Score constants. Mate scores are offset by the ply at which the mate is
// delivered, so a shorter mate always scores higher than a longer one and the
// distance can be recovered for reporting.
const (
	Infinity  = 1_000_000
	MateScore = 100_000

	// MaxDepth bounds iterative deepening when no depth limit is given.
	MaxDepth = 64

	// mateThreshold separates mate scores from material scores.
	mateThreshold = MateScore - 2*MaxDepth
)

// Limits bounds a search. Zero values mean "unlimited" for that dimension;
// a search with no limits at all still stops at MaxDepth.
type Limits struct {
	// Depth is the maximum iterative deepening depth in plies.
	Depth int

	// Nodes stops the search after roughly this many visited nodes.
	Nodes uint64

	// MoveTime stops the search after a wall-clock budget.
	MoveTime time.Duration

	// Stop aborts the search cooperatively when set. The UCI "stop" command
	// flips it from another goroutine.
	Stop *atomic.Bool

	// OnIteration, when non-nil, receives the result of every completed
	// deepening iteration. The UCI layer uses it to emit "info" lines.
	OnIteration func(Result)
}

// Result is the outcome of a search. BestMove is NoMove only when the root
// position has no legal moves.
type Result struct {
	BestMove board.Move
	Score    int
	Depth    int
	Nodes    uint64
	Elapsed  time.Duration
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > mateThreshold || score < -mateThreshold
}

// MateIn converts a mate score to the number of full moves until mate,
// negative when the side to move is the one being mated.
func MateIn(score int) int {
	if score > 0 {
		return (MateScore - score + 1) / 2
	}
	return -(MateScore + score + 1) / 2
}

type searcher struct {
	board    *board.Board
	nodes    uint64
	maxNodes uint64
	deadline time.Time
	stop     *atomic.Bool
	aborted  bool
}

// checkBudget sets the aborted flag once any budget is exhausted. The clock
// is polled every 1024 nodes to keep the syscall off the hot path.
func (s *searcher) checkBudget() {
	if s.aborted {
		return
	}
	if s.stop != nil && s.stop.Load() {
		s.aborted = true
		return
	}
	if s.maxNodes > 0 && s.nodes >= s.maxNodes {
		s.aborted = true
		return
	}
	if !s.deadline.IsZero() && s.nodes%1024 == 0 && !time.Now().Before(s.deadline) {
		s.aborted = true
	}
}

// negamax is a fail-soft alpha-beta search. The score is always from the
// perspective of the side to move in the current position.
func (s *searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	s.checkBudget()
	if s.aborted {
		return 0
	}

	if depth <= 0 {
		return Evaluate(s.board)
	}

	moves := s.board.GenerateMoves()
	if len(moves) == 0 {
		if s.board.InCheck(s.board.SideToMove()) {
			// Mated here: the further from the root, the less bad.
			return -(MateScore - ply)
		}
		return 0 // stalemate
	}

	best := -Infinity
	for _, m := range moves {
		st := s.board.MakeMove(m)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha)
		s.board.UnmakeMove(st)
		if s.aborted {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// searchRoot runs one fixed-depth search from the root and returns the best
// move with its score. Moves are examined in generation order and ties keep
// the first move found, so results are deterministic for a position.
func (s *searcher) searchRoot(depth int) (board.Move, int) {
	moves := s.board.GenerateMoves()
	bestMove := board.NoMove
	bestScore := -Infinity
	alpha, beta := -Infinity, Infinity

	for _, m := range moves {
		st := s.board.MakeMove(m)
		score := -s.negamax(depth-1, 1, -beta, -alpha)
		s.board.UnmakeMove(st)
		if s.aborted {
			break
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}
	return bestMove, bestScore
}

// Search runs an iterative deepening search on the board within the given
// limits and returns the result of the last fully completed iteration. The
// board is restored to its entry state before returning.
func Search(b *board.Board, limits Limits) Result {
	start := time.Now()
	s := &searcher{
		board:    b,
		maxNodes: limits.Nodes,
		stop:     limits.Stop,
	}
	if limits.MoveTime > 0 {
		s.deadline = start.Add(limits.MoveTime)
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	result := Result{BestMove: board.NoMove}
	rootMoves := b.GenerateMoves()
	if len(rootMoves) == 0 {
		// Checkmate or stalemate at the root: nothing to play.
		if b.InCheck(b.SideToMove()) {
			result.Score = -MateScore
		}
		result.Elapsed = time.Since(start)
		return result
	}
	// Always have a fallback, even if the first iteration is cut short.
	result.BestMove = rootMoves[0]

	for depth := 1; depth <= maxDepth; depth++ {
		move, score := s.searchRoot(depth)
		if s.aborted {
			break
		}
		result.BestMove = move
		result.Score = score
		result.Depth = depth
		result.Nodes = s.nodes
		result.Elapsed = time.Since(start)
		if limits.OnIteration != nil {
			limits.OnIteration(result)
		}
		// A mate for the side to move cannot get better by searching deeper
		// than the mating line.
		if IsMateScore(score) && score > 0 && MateScore-score <= depth {
			break
		}
	}
	result.Nodes = s.nodes
	result.Elapsed = time.Since(start)
	return result
}
