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

// Square identifies one of the 25 cells of a Minishogi board, row-major
// with row 0 as White's back rank: square = row*5 + column.
type Square uint8

const (
	SquareNB = 25
	FileNB   = 5
	RankNB   = 5
	NoSquare Square = 255
)

// IsValid reports whether sq is a playable board square.
func (sq Square) IsValid() bool {
	return sq < SquareNB
}

// Row returns the 0-based row (0 = White's back rank).
func (sq Square) Row() int {
	return int(sq) / FileNB
}

// Col returns the 0-based column.
func (sq Square) Col() int {
	return int(sq) % FileNB
}

// MakeSquare builds a Square from a row and column, both 0-based.
func MakeSquare(row, col int) Square {
	return Square(row*FileNB + col)
}

var sfenFiles = "54321"
var sfenRanks = "abcde"

// SfenStr renders sq using the 5x5 SFEN convention: file digits count down
// from 5 to 1, ranks are letters a..e.
func (sq Square) SfenStr() string {
	if !sq.IsValid() {
		return "--"
	}
	return fmt.Sprintf("%c%c", sfenFiles[sq.Col()], sfenRanks[sq.Row()])
}

// CsaStr renders sq using CSA's two-digit file/rank convention.
func (sq Square) CsaStr() string {
	if !sq.IsValid() {
		return "00"
	}
	return fmt.Sprintf("%c%c", sfenFiles[sq.Col()], '1'+byte(sq.Row()))
}

// SquareFromSfen parses a two-character SFEN square such as "4d" back into a
// Square. It is a programmer error to call it with malformed input.
func SquareFromSfen(s string) Square {
	col := 0
	for i, c := range sfenFiles {
		if byte(c) == s[0] {
			col = i
			break
		}
	}
	row := int(s[1] - 'a')
	return MakeSquare(row, col)
}

// Mirror returns the point-symmetric square (used to present a Black-to-move
// position from White's perspective for the neural-network encoding).
func (sq Square) Mirror() Square {
	return Square(SquareNB - 1 - int(sq))
}
