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

import "fmt"

// Move is a tagged struct describing either a board move or a hand drop.
// Unlike the chess engine this was adapted from, a Move is not bit-packed
// into a single integer - at 25 squares and 20 piece values a plain struct
// is both cheaper to reason about and costs nothing extra in practice.
type Move struct {
	Piece        Piece
	From         Square // meaningless (NoSquare) when IsDrop
	To           Square
	IsDrop       bool
	Promotion    bool
	CapturePiece Piece
}

// NullMove is the "resign"/"no move" sentinel, matching the reference
// implementation's NULL_MOVE: an out-of-range From and NoPiece.
var NullMove = Move{Piece: NoPiece, From: NoSquare, To: 0, IsDrop: false, Promotion: false, CapturePiece: NoPiece}

// BoardMove constructs a move that relocates a piece already on the board.
func BoardMove(piece Piece, from, to Square, promotion bool, capture Piece) Move {
	return Move{Piece: piece, From: from, To: to, IsDrop: false, Promotion: promotion, CapturePiece: capture}
}

// DropMove constructs a move that places a piece held in hand onto the
// board.
func DropMove(piece Piece, to Square) Move {
	return Move{Piece: piece, From: NoSquare, To: to, IsDrop: true, Promotion: false, CapturePiece: NoPiece}
}

// IsNullMove reports whether m is the NullMove sentinel.
func (m Move) IsNullMove() bool {
	return m.Piece == NoPiece
}

// HandIndex returns the hand-array slot for a drop move's piece.
func (m Move) HandIndex() int {
	return m.Piece.GetPieceType().HandIndex()
}

// Sfen renders m using this engine's 5x5 SFEN move syntax.
func (m Move) Sfen() string {
	if m.IsNullMove() {
		return "resign"
	}
	if m.IsDrop {
		return fmt.Sprintf("%c*%s", HandChar(m.Piece.GetPieceType()), m.To.SfenStr())
	}
	if m.Promotion {
		return fmt.Sprintf("%s%s+", m.From.SfenStr(), m.To.SfenStr())
	}
	return fmt.Sprintf("%s%s", m.From.SfenStr(), m.To.SfenStr())
}

var csaPieceCode = map[PieceType]string{
	PtNone: "--", King: "OU", Gold: "KI", Silver: "GI", Bishop: "KA", Rook: "HI", Pawn: "FU",
	SilverProm: "NG", BishopProm: "UM", RookProm: "RY", PawnProm: "TO",
}

// CsaSfen renders m using the CSA export notation (see CSA move format in
// the external interfaces).
func (m Move) CsaSfen() string {
	if m.IsNullMove() {
		return "%TORYO"
	}
	if m.IsDrop {
		return fmt.Sprintf("00%s%s", m.To.CsaStr(), csaPieceCode[m.Piece.GetPieceType()])
	}
	pt := m.Piece.GetPieceType()
	if m.Promotion {
		pt = pt.GetPromoted()
	}
	return fmt.Sprintf("%s%s%s", m.From.CsaStr(), m.To.CsaStr(), csaPieceCode[pt])
}

// String implements fmt.Stringer via the SFEN rendering, matching the
// reference implementation's __repr__.
func (m Move) String() string {
	return m.Sfen()
}
