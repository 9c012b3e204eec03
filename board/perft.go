package board

// Perft counts the leaf nodes of the legal move tree to the given depth. It is
// the standard correctness check for move generation and make/unmake: the
// counts for known positions are tabulated in the literature, and a single
// missing or extra move anywhere in the tree changes the total.
func (b *Board) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateMovesInto(make([]Move, 0, 48))
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		st := b.MakeMove(m)
		nodes += b.Perft(depth - 1)
		b.UnmakeMove(st)
	}
	return nodes
}

// PerftDivide returns the per-root-move subtotals at the given depth. When a
// perft total disagrees with the reference value, dividing against a trusted
// engine pinpoints the first divergent move.
func (b *Board) PerftDivide(depth int) map[Move]uint64 {
	results := make(map[Move]uint64)
	for _, m := range b.GenerateMoves() {
		st := b.MakeMove(m)
		results[m] = b.Perft(depth - 1)
		b.UnmakeMove(st)
	}
	return results
}
