package engine

import (
	"strconv"
	"time"
)

// Clock carries the game clock as reported by the UCI "go" command, in
// milliseconds per the protocol.
type Clock struct {
	RemainingMs int
	IncrementMs int
}

// Time allocation knobs. The allocator banks the increment when the clock is
// nearly empty and otherwise spends an even share of the remaining time.
const (
	overheadMs    = 30   // reserve for protocol and IO jitter
	minMoveMs     = 5    // never think for less than this
	maxFrac       = 0.7  // never spend more than this share of the clock
	panicThreshMs = 1000 // below this the increment is all we dare use
	panicFrac     = 0.90
	assumedMoves  = 35 // assumed moves left in the game
)

// AllocateTime converts a game clock into a per-move thinking budget.
func AllocateTime(c Clock) time.Duration {
	rem := c.RemainingMs
	inc := c.IncrementMs

	var moveTime int
	if inc > 0 {
		if rem < panicThreshMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/assumedMoves + inc
		}
	} else {
		moveTime = rem / 40
	}

	if moveTime > int(float64(rem)*maxFrac) {
		moveTime = int(float64(rem) * maxFrac)
	}
	if moveTime > rem-overheadMs {
		moveTime = rem - overheadMs
	}
	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	return time.Duration(moveTime) * time.Millisecond
}

// FormatScore renders a search score the way the UCI protocol expects:
// "cp N" for material scores, "mate N" for forced mates.
func FormatScore(score int) string {
	if IsMateScore(score) {
		return "mate " + strconv.Itoa(MateIn(score))
	}
	return "cp " + strconv.Itoa(score)
}
