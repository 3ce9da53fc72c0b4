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

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit mask over the 25 squares of a Minishogi board; only
// the low 25 bits are ever meaningfully set.
type Bitboard uint64

const (
	EmptyBb Bitboard = 0
	// FullBb has all 25 board bits set.
	FullBb Bitboard = (1 << SquareNB) - 1
)

// SquareBb returns the singleton bitboard for sq.
func SquareBb(sq Square) Bitboard {
	return 1 << Bitboard(sq)
}

// PushSquare returns b with sq's bit set.
func (b Bitboard) PushSquare(sq Square) Bitboard {
	return b | SquareBb(sq)
}

// PopSquare returns b with sq's bit cleared.
func (b Bitboard) PopSquare(sq Square) Bitboard {
	return b &^ SquareBb(sq)
}

// Has reports whether sq's bit is set in b.
func (b Bitboard) Has(sq Square) bool {
	return b&SquareBb(sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Lsb returns the index of the lowest set bit, or NoSquare if b is empty.
func (b Bitboard) Lsb() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLsb returns the lowest set square together with b with that bit
// cleared, mirroring the "while bb != 0 { i = lsb(bb); bb ^= 1<<i }" idiom
// used throughout move generation.
func (b Bitboard) PopLsb() (Square, Bitboard) {
	sq := b.Lsb()
	return sq, b.PopSquare(sq)
}

// StrBoard renders b as a 5x5 grid of 'X'/'.' for debugging, row 0 first.
func (b Bitboard) StrBoard() string {
	var sb strings.Builder
	for row := 0; row < RankNB; row++ {
		for col := 0; col < FileNB; col++ {
			if b.Has(MakeSquare(row, col)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
