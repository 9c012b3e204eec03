package board

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Sentinel marks the off-board border cells of the mailbox grid.
	// It uses the otherwise unused type code 7 so that Type() stays cheap.
	Sentinel Piece = 7

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Mailbox dimensions: the playable 8x8 area sits inside a 10-wide, 12-high
// grid. The extra ring (two ranks top and bottom, one file each side) holds
// Sentinel cells, so a single step off the edge always lands on a sentinel
// instead of wrapping to the opposite rank or file.
const (
	boardWidth  = 10
	boardHeight = 12
	gridSize    = boardWidth * boardHeight
)

// Square is an index into the sentinel-bordered mailbox grid.
type Square int16

const NoSquare Square = -1

// Named squares needed by castling and the FEN layer.
const (
	A1 Square = 21
	B1 Square = 22
	C1 Square = 23
	D1 Square = 24
	E1 Square = 25
	F1 Square = 26
	G1 Square = 27
	H1 Square = 28

	A8 Square = 91
	B8 Square = 92
	C8 Square = 93
	D8 Square = 94
	E8 Square = 95
	F8 Square = 96
	G8 Square = 97
	H8 Square = 98
)

// SquareAt maps a file and rank (both 0-7) to a mailbox index.
func SquareAt(file, rank int) Square {
	return Square((rank+2)*boardWidth + file + 1)
}

// File returns the file (0-7) of a playable square.
func (s Square) File() int { return int(s)%boardWidth - 1 }

// Rank returns the rank (0-7) of a playable square.
func (s Square) Rank() int { return int(s)/boardWidth - 2 }

// index64 maps a playable square to the standard 0-63 indexing used by the
// Zobrist tables and the FEN layer.
func (s Square) index64() int { return s.Rank()*8 + s.File() }

func squareFrom64(i int) Square { return SquareAt(i%8, i/8) }

// String returns the algebraic coordinate of the square (e.g. "e4").
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// Board represents the chess board state, including piece placement and game state.
//
// The squares array is the single source of truth for occupancy; the piece
// lists are a derived index kept in sync by the mutators below. Any
// divergence between the two is a programming error and panics.
type Board struct {
	// Mailbox grid: sentinel border around the playable 8x8 area.
	squares [gridSize]Piece

	// Per-color, per-kind lists of occupied squares.
	pieceList PieceList

	// Side to move (which player's turn it is)
	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags)
	castlingRights CastlingRights

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmove clock (number of half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Zobrist hash key for the current position (for move repetition tracking)
	zobristKey uint64
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	buf := make([]Move, 0, 64)
	moves := b.GenerateMovesInto(buf)
	return len(moves) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// IsDrawBy50 reports a 50-move rule draw (halfmoveClock counts half-moves).
func (b *Board) IsDrawBy50() bool {
	return b.halfmoveClock >= 100
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRightsMask returns the current castling-rights bitmask.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceAt returns the piece on a square (Sentinel for border cells).
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// KingSquare returns the square of the given side's king, or NoSquare if the
// king is absent (only possible on hand-built positions).
func (b *Board) KingSquare(color Color) Square {
	return b.pieceList.KingSquare(color)
}

// Squares returns the occupied squares of one (color, kind) list. The returned
// slice is owned by the board and must not be mutated.
func (b *Board) Squares(color Color, pt PieceType) []Square {
	return b.pieceList.SquaresOf(color, pt)
}

// Count returns the number of pieces of one (color, kind).
func (b *Board) Count(color Color, pt PieceType) int {
	return b.pieceList.Count(color, pt)
}

// IsDrawByRepetition reports a draw by threefold repetition based on the provided
// history of Zobrist keys. The check counts occurrences of the current position's
// Zobrist key in the history plus the current position itself. If it appears
// three or more times, it returns true.
//
// Notes:
//   - The caller should typically pass keys since the last irreversible move
//     (capture or pawn move) for efficiency, though including a longer history is fine.
//   - Zobrist key already encodes side to move, castling rights and en passant file,
//     which are required for the repetition rule.
func (b *Board) IsDrawByRepetition(history []uint64) bool {
	target := b.zobristKey
	// Do not double-count if the last history entry is the current position.
	end := len(history)
	if end > 0 && history[end-1] == target {
		end--
	}
	matches := 0
	for i := 0; i < end; i++ {
		if history[i] == target {
			matches++
			if matches >= 2 { // plus current occurrence makes threefold
				return true
			}
		}
	}
	return false
}

// ==========================
// Move helpers for drivers
// ==========================

// PushMove verifies the move against the legal move list, and if legal makes
// it, appends the resulting Zobrist key to the provided history, and pushes
// the MoveState onto the stack for later undo. Returns false and leaves the
// board unchanged for illegal moves.
func (b *Board) PushMove(m Move, stack *[]MoveState, history *[]uint64) bool {
	st, err := b.ApplyMove(m)
	if err != nil {
		return false
	}
	*stack = append(*stack, st)
	*history = append(*history, b.zobristKey)
	return true
}

// PopMove undoes the last move pushed with PushMove, restoring the board state
// and truncating the history by one entry.
// It panics if the stack is empty.
func (b *Board) PopMove(stack *[]MoveState, history *[]uint64) {
	n := len(*stack)
	if n == 0 {
		panic("PopMove: empty stack")
	}
	st := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	b.UnmakeMove(st)
	if len(*history) > 0 {
		*history = (*history)[:len(*history)-1]
	}
}

// ==========================
// Board occupancy helpers
// ==========================

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// typeOf returns the piece type in [1..6] with color stripped.
func typeOf(p Piece) PieceType { return PieceType(p & 7) }

// addPiece places a piece on an empty playable square and updates the grid,
// the piece lists and the Zobrist key.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	if b.squares[sq] != NoPiece {
		panic("board: addPiece on occupied square")
	}
	b.squares[sq] = p
	b.pieceList.add(colorOf(p), typeOf(p), sq)
	b.zobristKey ^= zobristPiece[p][sq.index64()]
}

// removePiece removes a piece from a square and updates the grid, the piece
// lists and the Zobrist key.
func (b *Board) removePiece(sq Square) Piece {
	p := b.squares[sq]
	if p == NoPiece {
		return NoPiece
	}
	b.squares[sq] = NoPiece
	b.pieceList.remove(colorOf(p), typeOf(p), sq)
	b.zobristKey ^= zobristPiece[p][sq.index64()]
	return p
}

// clearGrid resets every cell to Sentinel and carves out the playable area.
func (b *Board) clearGrid() {
	for i := range b.squares {
		b.squares[i] = Sentinel
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			b.squares[SquareAt(file, rank)] = NoPiece
		}
	}
	b.pieceList.clear()
}
