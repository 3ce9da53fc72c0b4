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

// random is a xorshift64star pseudo-random number generator, based on
// original code written and dedicated to the public domain by Sebastiano
// Vigna (2014). Internal state is a single 64-bit integer with period
// 2^64-1; used only to seed the deterministic Zobrist tables below so hash
// values are reproducible across runs.
type random struct {
	s uint64
}

// newRandom creates a generator seeded with a non-zero value.
func newRandom(seed uint64) random {
	if seed == 0 {
		panic("zobrist seed must not be 0")
	}
	return random{s: seed}
}

// rand64 returns the next 64-bit pseudo-random number.
func (r *random) rand64() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * 2685821657736338717
}

// Key is a Zobrist hash component.
type Key uint64

// BoardTable holds one key per (square, piece) pair. Every entry has its low
// bit cleared (generated shifted left by one) so bit 0 of a combined hash is
// free to encode side-to-move.
var BoardTable [SquareNB][PieceLength]Key

// HandTable holds one key per (color, hand-slot, count) triple, counts
// 0..2 - the maximum simultaneous hand count for any piece type reachable
// in 5x5 Minishogi play. Index 0 ("zero of this piece") is XORed in exactly
// like every other count so hand-count transitions are a plain XOR of the
// departing and arriving entries.
var HandTable [2][5][3]Key

func initZobrist() {
	r := newRandom(1070372)
	for sq := Square(0); sq < SquareNB; sq++ {
		for p := Piece(0); p < PieceLength; p++ {
			BoardTable[sq][p] = Key(r.rand64() << 1)
		}
	}
	for c := 0; c < 2; c++ {
		for slot := 0; slot < 5; slot++ {
			for count := 0; count < 3; count++ {
				HandTable[c][slot][count] = Key(r.rand64())
			}
		}
	}
}
