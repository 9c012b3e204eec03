package board

import "fmt"

// MoveState snapshots the irreversible parts of the position before a move so
// UnmakeMove can restore them exactly.
type MoveState struct {
	move Move

	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64

	// Rook relocation for castle moves, NoSquare otherwise.
	rookFrom Square
	rookTo   Square
}

// Move returns the move this state was recorded for.
func (st MoveState) Move() Move { return st.move }

// MakeMove executes a move and returns the state needed to undo it. The move
// must come from GenerateMoves for the current position; MakeMove does not
// re-check legality. Use ApplyMove when the move's provenance is untrusted.
func (b *Board) MakeMove(m Move) MoveState {
	us := b.sideToMove
	st := MoveState{
		move:          m,
		prevCastling:  b.castlingRights,
		prevEnPassant: b.enPassantSquare,
		prevHalfmove:  b.halfmoveClock,
		prevFullmove:  b.fullmoveNumber,
		prevZobrist:   b.zobristKey,
		rookFrom:      NoSquare,
		rookTo:        NoSquare,
	}

	from, to := m.From(), m.To()
	piece := m.MovedPiece()

	// The en passant target is valid for one ply only.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
		b.enPassantSquare = NoSquare
	}

	// Remove the captured piece. For en passant the captured pawn sits beside
	// the destination, not on it.
	if captured := m.CapturedPiece(); captured != NoPiece {
		capSq := to
		if m.Flags() == FlagEnPassant {
			capSq = to - pawnForward(us)
		}
		b.removePiece(capSq)
	}

	// Relocate the moving piece, swapping in the promotion piece if any.
	b.removePiece(from)
	if promo := m.PromotionPiece(); promo != NoPiece {
		b.addPiece(to, promo)
	} else {
		b.addPiece(to, piece)
	}

	// Castling also relocates the rook.
	if m.Flags() == FlagCastle {
		switch to {
		case G1:
			st.rookFrom, st.rookTo = H1, F1
		case C1:
			st.rookFrom, st.rookTo = A1, D1
		case G8:
			st.rookFrom, st.rookTo = H8, F8
		case C8:
			st.rookFrom, st.rookTo = A8, D8
		}
		rook := b.removePiece(st.rookFrom)
		b.addPiece(st.rookTo, rook)
	}

	// Castling rights are lost when the king or a rook moves, or when a rook
	// is captured on its home square.
	if newRights := b.castlingRights &^ (rightsTouched(from) | rightsTouched(to)); newRights != b.castlingRights {
		b.zobristKey ^= zobristCastle[b.castlingRights] ^ zobristCastle[newRights]
		b.castlingRights = newRights
	}

	// A double push opens an en passant opportunity behind the pawn.
	if m.Flags() == FlagDoublePush {
		b.enPassantSquare = from + pawnForward(us)
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}

	if typeOf(piece) == PieceTypePawn || m.IsCapture() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	b.sideToMove = us.Opposite()
	b.zobristKey ^= zobristSide
	return st
}

// rightsTouched maps a square to the castling rights that die when a move
// starts or ends on it.
func rightsTouched(sq Square) CastlingRights {
	switch sq {
	case E1:
		return CastlingWhiteK | CastlingWhiteQ
	case H1:
		return CastlingWhiteK
	case A1:
		return CastlingWhiteQ
	case E8:
		return CastlingBlackK | CastlingBlackQ
	case H8:
		return CastlingBlackK
	case A8:
		return CastlingBlackQ
	default:
		return 0
	}
}

// UnmakeMove reverses a move made with MakeMove, restoring the position to the
// exact prior state, including the Zobrist key.
func (b *Board) UnmakeMove(st MoveState) {
	m := st.move
	from, to := m.From(), m.To()

	b.sideToMove = b.sideToMove.Opposite()
	us := b.sideToMove

	// Put the moving piece back. Promotions revert to the pawn.
	b.removePiece(to)
	b.addPiece(from, m.MovedPiece())

	if captured := m.CapturedPiece(); captured != NoPiece {
		capSq := to
		if m.Flags() == FlagEnPassant {
			capSq = to - pawnForward(us)
		}
		b.addPiece(capSq, captured)
	}

	if m.Flags() == FlagCastle {
		rook := b.removePiece(st.rookTo)
		b.addPiece(st.rookFrom, rook)
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
}

// ApplyMove validates m against the legal moves of the current position and
// makes it. It returns an error, leaving the board untouched, when the move is
// not legal. This is the entry point for moves from untrusted sources such as
// the UCI layer or the HTTP API.
func (b *Board) ApplyMove(m Move) (MoveState, error) {
	for _, legal := range b.GenerateMoves() {
		if legal == m {
			return b.MakeMove(m), nil
		}
	}
	return MoveState{}, fmt.Errorf("illegal move %s", m)
}
