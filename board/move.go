package board

import (
	"errors"
	"fmt"
)

// Move is a packed move representation.
//
// Bit layout (mailbox squares fit in 7 bits):
//
//	bits  0-6   from square
//	bits  7-13  to square
//	bits 14-17  moved piece
//	bits 18-21  captured piece (NoPiece when quiet)
//	bits 22-25  promotion piece (NoPiece when not a promotion)
//	bits 26-27  move flags
type Move uint32

// NoMove is the zero Move, used as a sentinel for "no move available".
const NoMove Move = 0

// Move flags. Castling, en passant and the double pawn push all need special
// handling in the executor, so they are tagged at generation time.
const (
	FlagNone uint32 = iota
	FlagCastle
	FlagEnPassant
	FlagDoublePush
)

// NewMove packs a move. The captured piece for en passant is the pawn removed
// from its own square, not a piece on the destination.
func NewMove(from, to Square, piece, captured, promotion Piece, flags uint32) Move {
	return Move(uint32(from) |
		uint32(to)<<7 |
		uint32(piece)<<14 |
		uint32(captured)<<18 |
		uint32(promotion)<<22 |
		flags<<26)
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x7F) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 7) & 0x7F) }

// MovedPiece returns the piece being moved.
func (m Move) MovedPiece() Piece { return Piece((m >> 14) & 0xF) }

// CapturedPiece returns the captured piece, or NoPiece for quiet moves.
func (m Move) CapturedPiece() Piece { return Piece((m >> 18) & 0xF) }

// PromotionPiece returns the promotion piece, or NoPiece.
func (m Move) PromotionPiece() Piece { return Piece((m >> 22) & 0xF) }

// Flags returns the move flags.
func (m Move) Flags() uint32 { return uint32(m>>26) & 0x3 }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.CapturedPiece() != NoPiece }

// String renders the move in long algebraic coordinate form, e.g. "e2e4" or
// "e7e8q" for promotions. This is the format the UCI protocol uses.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if promo := m.PromotionPiece(); promo != NoPiece {
		switch promo.Type() {
		case PieceTypeQueen:
			s += "q"
		case PieceTypeRook:
			s += "r"
		case PieceTypeBishop:
			s += "b"
		case PieceTypeKnight:
			s += "n"
		}
	}
	return s
}

// SquareFromAlgebraic parses a coordinate like "e4" into a mailbox square.
func SquareFromAlgebraic(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return SquareAt(file, rank), nil
}

// ParseMove resolves a long-algebraic move string ("e2e4", "e7e8q") against
// the legal moves of the current position. Returns an error if the string is
// malformed or does not name a legal move.
func (b *Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := SquareFromAlgebraic(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	to, err := SquareFromAlgebraic(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	var promo PieceType
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = PieceTypeQueen
		case 'r':
			promo = PieceTypeRook
		case 'b':
			promo = PieceTypeBishop
		case 'n':
			promo = PieceTypeKnight
		default:
			return NoMove, fmt.Errorf("invalid promotion in move %q", s)
		}
	}
	for _, m := range b.GenerateMoves() {
		if m.From() == from && m.To() == to && m.PromotionPiece().Type() == promo {
			return m, nil
		}
	}
	return NoMove, errors.New("move is not legal in this position")
}
