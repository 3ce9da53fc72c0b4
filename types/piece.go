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

// Piece combines a PieceType (low 4 bits) with a color bit (bit 4). NoPiece
// is the zero value so a freshly zeroed board array is automatically empty.
type Piece uint8

const (
	NoPiece Piece = 0

	WKing   Piece = Piece(King)
	WGold   Piece = Piece(Gold)
	WSilver Piece = Piece(Silver)
	WBishop Piece = Piece(Bishop)
	WRook   Piece = Piece(Rook)
	WPawn   Piece = Piece(Pawn)

	WSilverProm Piece = Piece(SilverProm)
	WBishopProm Piece = Piece(BishopProm)
	WRookProm   Piece = Piece(RookProm)
	WPawnProm   Piece = Piece(PawnProm)

	BKing   Piece = Piece(King) | 0b10000
	BGold   Piece = Piece(Gold) | 0b10000
	BSilver Piece = Piece(Silver) | 0b10000
	BBishop Piece = Piece(Bishop) | 0b10000
	BRook   Piece = Piece(Rook) | 0b10000
	BPawn   Piece = Piece(Pawn) | 0b10000

	BSilverProm Piece = Piece(SilverProm) | 0b10000
	BBishopProm Piece = Piece(BishopProm) | 0b10000
	BRookProm   Piece = Piece(RookProm) | 0b10000
	BPawnProm   Piece = Piece(PawnProm) | 0b10000

	// PieceLength is one past the highest valid Piece value.
	PieceLength = 0b11111 + 1
)

// MakePiece combines a color and a piece type into a Piece.
func MakePiece(c Color, pt PieceType) Piece {
	return pt.GetPiece(c)
}

// GetPieceType extracts the PieceType component of p.
func (p Piece) GetPieceType() PieceType {
	return PieceType(p & 0b01111)
}

// GetColor returns the color of p, or NoColor for NoPiece.
func (p Piece) GetColor() Color {
	if p == NoPiece {
		return NoColor
	}
	if p&0b10000 != 0 {
		return Black
	}
	return White
}

// GetPromoted returns the promoted form of p.
func (p Piece) GetPromoted() Piece {
	return p | 0b01000
}

// GetRaw strips the promotion bit from p.
func (p Piece) GetRaw() Piece {
	return p &^ 0b01000
}

// IsPromoted reports whether p carries the promotion bit.
func (p Piece) IsPromoted() bool {
	return p&0b01000 != 0
}

// IsRaw is the complement of IsPromoted.
func (p Piece) IsRaw() bool {
	return !p.IsPromoted()
}

// IsPromotable delegates to the piece type.
func (p Piece) IsPromotable() bool {
	return p.GetPieceType().IsPromotable()
}

// GetOpPiece returns the same piece type owned by the opposite color. Calling
// it on NoPiece returns NoPiece.
func (p Piece) GetOpPiece() Piece {
	if p == NoPiece {
		return NoPiece
	}
	return p ^ 0b10000
}

var pieceToString = map[Piece]string{
	NoPiece: " * ",

	WKing: " K ", WGold: " G ", WSilver: " S ", WBishop: " B ", WRook: " R ", WPawn: " P ",
	WSilverProm: " Sx", WBishopProm: " Bx", WRookProm: " Rx", WPawnProm: " Px",

	BKing: "vK ", BGold: "vG ", BSilver: "vS ", BBishop: "vB ", BRook: "vR ", BPawn: "vP ",
	BSilverProm: "vSx", BBishopProm: "vBx", BRookProm: "vRx", BPawnProm: "vPx",
}

// String returns a 3-character diagnostic board glyph for p.
func (p Piece) String() string {
	if s, ok := pieceToString[p]; ok {
		return s
	}
	return "ERR"
}
