package board

import "testing"

// Reference node counts for the standard perft positions.
var perftFixtures = []struct {
	name   string
	fen    string
	counts []uint64 // counts[i] is perft(i+1)
}{
	{
		name:   "initial",
		fen:    FENStartPos,
		counts: []uint64{20, 400, 8902, 197281},
	},
	{
		name:   "kiwipete",
		fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		counts: []uint64{48, 2039, 97862},
	},
	{
		name:   "endgame",
		fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		counts: []uint64{14, 191, 2812, 43238},
	},
	{
		name:   "mirrored promotion",
		fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		counts: []uint64{6, 264, 9467},
	},
	{
		name:   "talkchess",
		fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		counts: []uint64{44, 1486, 62379},
	},
	{
		name:   "castling",
		fen:    "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		counts: []uint64{26, 568},
	},
	{
		name:   "promotion bonanza",
		fen:    "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		counts: []uint64{24, 496, 9483},
	},
}

func TestPerft(t *testing.T) {
	for _, fx := range perftFixtures {
		t.Run(fx.name, func(t *testing.T) {
			b, err := ParseFEN(fx.fen)
			if err != nil {
				t.Fatalf("ParseFEN failed: %v", err)
			}
			before := b.ToFEN()
			for depth, want := range fx.counts {
				if got := b.Perft(depth + 1); got != want {
					// Dump the divide counts so the first divergent root
					// move is visible in the failure output.
					for m, n := range b.PerftDivide(depth + 1) {
						t.Logf("  %s: %d", m, n)
					}
					t.Fatalf("perft depth%d: got %d want %d", depth+1, got, want)
				}
			}
			if got := b.ToFEN(); got != before {
				t.Fatalf("perft mutated the board: got %q want %q", got, before)
			}
		})
	}
}

func TestPerftDepth5(t *testing.T) {
	if testing.Short() {
		t.Skip("deep perft skipped in short mode")
	}
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	if got := b.Perft(5); got != 4865609 {
		t.Fatalf("perft depth5: got %d want 4865609", got)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	b, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	divide := b.PerftDivide(3)
	if len(divide) != 20 {
		t.Fatalf("divide roots: got %d want 20", len(divide))
	}
	var total uint64
	for _, n := range divide {
		total += n
	}
	if total != 8902 {
		t.Fatalf("divide total: got %d want 8902", total)
	}
}

func BenchmarkPerft(b *testing.B) {
	board, err := ParseFEN(FENStartPos)
	if err != nil {
		b.Fatalf("ParseFEN failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := board.Perft(3); got != 8902 {
			b.Fatalf("perft depth3: got %d want 8902", got)
		}
	}
}
