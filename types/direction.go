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

// Direction is one of the eight compass directions used by relation lookups
// and piece move tables. Values are indices into DirectionAll / the delta
// tables below, not bit-shift amounts (the 5x5 board is too small for the
// chess engine's rank/file shift trick to carry over usefully).
type Direction int8

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW

	DirectionNB = 8
)

// DirectionAll lists the eight directions in the order the original
// reference implementation builds its relation table.
var DirectionAll = [DirectionNB]Direction{N, NE, E, SE, S, SW, W, NW}

// rowColDelta holds the (row, col) unit step for each direction, row-major
// with row 0 at White's back rank (so N decreases the row).
var rowColDelta = [DirectionNB][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + 4) % DirectionNB
}

// Rotate rotates d by n steps of 45 degrees (used to remap directions to a
// White-to-move perspective when mirroring a Black-to-move position for the
// neural-network move encoding).
func (d Direction) Rotate(n int) Direction {
	r := (int(d) + n) % DirectionNB
	if r < 0 {
		r += DirectionNB
	}
	return Direction(r)
}
