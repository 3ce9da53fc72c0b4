/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

// PieceType enumerates the piece kinds on a 5x5 Minishogi board. Bit 3
// (0b1000) marks the promoted form of a promotable piece; King and Gold
// never carry that bit.
type PieceType uint8

const (
	PtNone PieceType = 0b0000

	King   PieceType = 0b0001
	Gold   PieceType = 0b0010
	Silver PieceType = 0b0011
	Bishop PieceType = 0b0100
	Rook   PieceType = 0b0101
	Pawn   PieceType = 0b0110

	SilverProm PieceType = 0b1011
	BishopProm PieceType = 0b1100
	RookProm   PieceType = 0b1101
	PawnProm   PieceType = 0b1110

	// PtLength is one past the highest valid PieceType value, sized for
	// direct use as an array bound.
	PtLength = 0b1111 + 1
)

// PieceTypeAll lists every on-board piece type, raw and promoted, in the
// order the original reference implementation iterates them.
var PieceTypeAll = [10]PieceType{King, Gold, Silver, Bishop, Rook, Pawn, SilverProm, BishopProm, RookProm, PawnProm}

// HandPieceTypeAll lists the five piece types that can be held in hand,
// in hand-array order: Gold, Silver, Bishop, Rook, Pawn.
var HandPieceTypeAll = [5]PieceType{Gold, Silver, Bishop, Rook, Pawn}

// GetPromoted returns the promoted form of pt. Calling it on King or Gold
// is a programmer error (neither promotes); callers must check IsPromotable
// first.
func (pt PieceType) GetPromoted() PieceType {
	return pt | 0b1000
}

// GetRaw strips the promotion bit, returning the un-promoted piece type.
func (pt PieceType) GetRaw() PieceType {
	return pt &^ 0b1000
}

// IsPromoted reports whether pt carries the promotion bit.
func (pt PieceType) IsPromoted() bool {
	return pt&0b1000 != 0
}

// IsRaw is the complement of IsPromoted.
func (pt PieceType) IsRaw() bool {
	return !pt.IsPromoted()
}

// IsPromotable reports whether pt is one of {Silver, Bishop, Rook, Pawn} in
// its raw form. King and Gold are never promotable.
func (pt PieceType) IsPromotable() bool {
	return pt > Gold && pt <= Pawn
}

// GetPiece combines pt with a color to produce a concrete Piece.
func (pt PieceType) GetPiece(c Color) Piece {
	if pt == PtNone {
		return NoPiece
	}
	if c == White {
		return Piece(pt)
	}
	return Piece(pt | 0b10000)
}

// HandIndex returns the index of pt within the 5-slot hand arrays, valid
// only for the five hand-holdable raw piece types.
func (pt PieceType) HandIndex() int {
	return int(pt) - int(Gold)
}

var pieceTypeToChar = map[PieceType]string{
	King: "K", Gold: "G", Silver: "S", Bishop: "B", Rook: "R", Pawn: "P",
	SilverProm: "S", BishopProm: "B", RookProm: "R", PawnProm: "P",
}

// Char returns the single-letter SFEN piece-type character (promotion is
// rendered by the caller as a leading "+").
func (pt PieceType) Char() string {
	return pieceTypeToChar[pt]
}

var handPieceToChar = [7]byte{'E', 'E', 'G', 'S', 'B', 'R', 'P'}

// HandChar returns the single-letter drop character used for hand pieces,
// keyed the same way the original reference table does (index 0 and 1
// unused, Gold..Pawn at indices 2..6).
func HandChar(pt PieceType) byte {
	return handPieceToChar[pt]
}
