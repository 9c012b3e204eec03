package board

import "fmt"

// Validate cross-checks the board's derived state against the grid. It is a
// debugging aid for tests and the UCI debug commands; production paths rely on
// the mutators keeping everything in sync.
func (b *Board) Validate() error {
	// Sentinel ring must be intact.
	for i := range b.squares {
		sq := Square(i)
		file := int(sq) % boardWidth
		rank := int(sq) / boardWidth
		playable := file >= 1 && file <= 8 && rank >= 2 && rank <= 9
		if playable {
			if b.squares[sq] == Sentinel {
				return fmt.Errorf("sentinel on playable square %s", sq)
			}
		} else if b.squares[sq] != Sentinel {
			return fmt.Errorf("border cell %d is not a sentinel", i)
		}
	}

	// Piece lists must mirror the grid exactly.
	var rebuilt PieceList
	rebuilt.rebuild(&b.squares)
	for c := White; c <= Black; c++ {
		for pt := PieceTypePawn; pt <= PieceTypeKing; pt++ {
			want := rebuilt.SquaresOf(c, pt)
			got := b.pieceList.SquaresOf(c, pt)
			if len(want) != len(got) {
				return fmt.Errorf("piece list mismatch for %s %s: grid has %d, list has %d",
					c, pt, len(want), len(got))
			}
			for _, sq := range got {
				if b.squares[sq] != PieceFromType(c, pt) {
					return fmt.Errorf("piece list claims %s %s on %s but grid disagrees",
						c, pt, sq)
				}
			}
		}
	}

	if b.pieceList.Count(White, PieceTypeKing) != 1 ||
		b.pieceList.Count(Black, PieceTypeKing) != 1 {
		return fmt.Errorf("each side must have exactly one king")
	}

	if want := b.ComputeZobrist(); b.zobristKey != want {
		return fmt.Errorf("incremental zobrist key %x drifted from recomputed %x",
			b.zobristKey, want)
	}
	return nil
}
