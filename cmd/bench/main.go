package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/miklz/enrust/board"
	"github.com/miklz/enrust/engine"
)

// A small mixed suite: openings, middlegames with tactics, and endgames.
var benchFENs = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"4k3/8/8/3q4/2P5/8/8/4K3 w - - 0 1",
	"8/P6k/8/8/8/8/8/K7 w - - 0 1",
}

func main() {
	depth := flag.Int("depth", 4, "Search depth per position")
	movetime := flag.Int("movetime", 0, "Per-position time budget in ms (overrides -depth)")
	flag.Parse()

	var totalNodes uint64
	start := time.Now()
	for i, fen := range benchFENs {
		b, err := board.ParseFEN(fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
			os.Exit(2)
		}
		limits := engine.Limits{Depth: *depth}
		if *movetime > 0 {
			limits = engine.Limits{MoveTime: time.Duration(*movetime) * time.Millisecond}
		}
		res := engine.Search(b, limits)
		totalNodes += res.Nodes
		fmt.Printf("[%d/%d] depth %d best %s score %s nodes %d time %v\n",
			i+1, len(benchFENs), res.Depth, res.BestMove,
			engine.FormatScore(res.Score), res.Nodes, res.Elapsed.Round(time.Millisecond))
	}
	elapsed := time.Since(start)
	fmt.Printf("total: %d nodes in %v (%.0f nps)\n",
		totalNodes, elapsed.Round(time.Millisecond),
		float64(totalNodes)/elapsed.Seconds())
}
