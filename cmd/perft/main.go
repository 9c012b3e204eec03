package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dylhunn/dragontoothmg"

	"github.com/miklz/enrust/board"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	compare := flag.Bool("compare", false, "Cross-check the node count against a reference generator")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := b.PerftDivide(*depth)
		type kv struct {
			m board.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		// Sort moves for stable output
		sort.Slice(arr, func(i, j int) bool { return arr[i].m.String() < arr[j].m.String() })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += b.Perft(*depth)
	}
	elapsed := time.Since(start)
	nodes := totalNodes / uint64(*repeat)

	nps := float64(totalNodes) / elapsed.Seconds()
	prefix := ""
	if *label != "" {
		prefix = *label + " "
	}
	fmt.Printf("%sperft(%d) = %d in %v (%.0f nps)\n", prefix, *depth, nodes, elapsed, nps)

	if *compare {
		ref := dragontoothmg.ParseFen(*fen)
		want := uint64(dragontoothmg.Perft(&ref, *depth))
		if nodes != want {
			fmt.Fprintf(os.Stderr, "MISMATCH: reference generator counts %d\n", want)
			os.Exit(1)
		}
		fmt.Println("reference generator agrees")
	}
}
