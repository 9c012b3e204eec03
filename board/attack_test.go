package board

import "testing"

func TestIsSquareAttacked(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	cases := []struct {
		sq   string
		by   Color
		want bool
	}{
		{"a8", White, true},  // rook up the a-file
		{"h1", White, false}, // the king on e1 blocks the rook's rank
		{"d1", White, true},  // rook and king both
		{"d7", Black, true},  // king on e8
		{"h5", Black, false}, // nothing reaches it
	}
	for _, tc := range cases {
		sq, err := SquareFromAlgebraic(tc.sq)
		if err != nil {
			t.Fatalf("bad square %q: %v", tc.sq, err)
		}
		if got := b.IsSquareAttacked(sq, tc.by); got != tc.want {
			t.Errorf("IsSquareAttacked(%s, %v): got %v want %v", tc.sq, tc.by, got, tc.want)
		}
	}
}

func TestPawnAttackDirections(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3p4/8/4P3/8/4K3 w - - 0 1")
	d4, _ := SquareFromAlgebraic("d4")
	f4, _ := SquareFromAlgebraic("f4")
	e4, _ := SquareFromAlgebraic("e4")
	c4, _ := SquareFromAlgebraic("c4")
	e6, _ := SquareFromAlgebraic("e6")

	// White pawn on e3 attacks d4 and f4, not e4.
	if !b.IsSquareAttacked(d4, White) || !b.IsSquareAttacked(f4, White) {
		t.Error("white pawn diagonal attacks missing")
	}
	if b.IsSquareAttacked(e4, White) {
		t.Error("white pawn must not attack straight ahead")
	}
	// Black pawn on d5 attacks c4 and e4, not behind itself.
	if !b.IsSquareAttacked(c4, Black) || !b.IsSquareAttacked(e4, Black) {
		t.Error("black pawn diagonal attacks missing")
	}
	if b.IsSquareAttacked(e6, Black) {
		t.Error("black pawn attacks point the wrong way")
	}
}

func TestKnightAttackNoWraparound(t *testing.T) {
	// A knight on a1 attacks only b3 and c2; mailbox sentinels must stop the
	// jumps that would wrap across the board edge.
	b := mustParse(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	b3, _ := SquareFromAlgebraic("b3")
	c2, _ := SquareFromAlgebraic("c2")
	h2, _ := SquareFromAlgebraic("h2")
	g1, _ := SquareFromAlgebraic("g1")
	if !b.IsSquareAttacked(b3, White) || !b.IsSquareAttacked(c2, White) {
		t.Error("corner knight attacks missing")
	}
	if b.IsSquareAttacked(h2, White) || b.IsSquareAttacked(g1, White) {
		t.Error("knight attack wrapped around the board edge")
	}
}

func TestInCheck(t *testing.T) {
	b := mustParse(t, "4r1k1/8/8/8/8/8/8/4K3 w - - 0 1")
	if !b.InCheck(White) {
		t.Error("white king on the rook's file must be in check")
	}
	if b.InCheck(Black) {
		t.Error("black is not in check")
	}

	b = mustParse(t, "4r1k1/8/8/8/4N3/8/8/4K3 w - - 0 1")
	if b.InCheck(White) {
		t.Error("knight on e4 blocks the rook; not check")
	}
}
