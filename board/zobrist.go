package board

import "math/rand"

// Zobrist hashing tables. The keys are generated from a fixed seed so hashes
// are reproducible across runs, which keeps repetition histories and test
// fixtures stable.
var (
	// Indexed by the piece byte (white 1..6, black 9..14) and the 0-63 square.
	zobristPiece [15][64]uint64

	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	rng := rand.New(rand.NewSource(0xC0DE))
	for p := WhitePawn; p <= BlackKing; p++ {
		if p.Type() == PieceTypeNone || p == Sentinel {
			continue
		}
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// ComputeZobrist recomputes the position hash from scratch. The incremental
// key maintained by the move executor must always equal this value; tests and
// Validate use it to detect drift.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := SquareAt(file, rank)
			if p := b.squares[sq]; p != NoPiece {
				key ^= zobristPiece[p][sq.index64()]
			}
		}
	}
	key ^= zobristCastle[b.castlingRights]
	if b.enPassantSquare != NoSquare {
		key ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	if b.sideToMove == Black {
		key ^= zobristSide
	}
	return key
}
