package board

import "fmt"

// PieceList tracks the occupied squares of every (color, kind) pair so move
// generation and attack tests can iterate pieces without scanning the grid.
//
// The board grid is the source of truth; the lists are a derived index that
// the board mutators keep in sync on every placement and removal. A removal
// that finds no matching entry means the two have diverged, which is a defect
// in the move executor, so it panics rather than repairing silently.
type PieceList struct {
	squares [2][7][]Square
}

func (pl *PieceList) add(c Color, pt PieceType, sq Square) {
	pl.squares[c][pt] = append(pl.squares[c][pt], sq)
}

func (pl *PieceList) remove(c Color, pt PieceType, sq Square) {
	list := pl.squares[c][pt]
	for i, s := range list {
		if s == sq {
			// Order-preserving removal keeps generation order reproducible.
			pl.squares[c][pt] = append(list[:i], list[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("piece list out of sync with board: no %s %v on %s",
		c, pt, sq))
}

// SquaresOf returns the squares occupied by pieces of one (color, kind).
// The slice is owned by the list and must not be mutated by callers.
func (pl *PieceList) SquaresOf(c Color, pt PieceType) []Square {
	return pl.squares[c][pt]
}

// Count returns the number of pieces of one (color, kind).
func (pl *PieceList) Count(c Color, pt PieceType) int {
	return len(pl.squares[c][pt])
}

// KingSquare returns the king square for a side, or NoSquare when absent.
func (pl *PieceList) KingSquare(c Color) Square {
	kings := pl.squares[c][PieceTypeKing]
	if len(kings) == 0 {
		return NoSquare
	}
	return kings[0]
}

func (pl *PieceList) clear() {
	for c := range pl.squares {
		for pt := range pl.squares[c] {
			pl.squares[c][pt] = pl.squares[c][pt][:0]
		}
	}
}

// rebuild re-derives every list from the grid, scanning squares in ascending
// order so the resulting generation order is deterministic for a position.
func (pl *PieceList) rebuild(squares *[gridSize]Piece) {
	pl.clear()
	for i, p := range squares {
		if p == NoPiece || p == Sentinel {
			continue
		}
		pl.add(colorOf(p), typeOf(p), Square(i))
	}
}
