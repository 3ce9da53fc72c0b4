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

// This file builds, once at process init, every attack/relation table move
// generation and check detection rely on. The board is tiny (25 squares) so
// every table fits comfortably in a few KB and every lookup is O(1) or a
// short bounded scan - "Shamefully copied from Beowulf"-style precomputed
// attack tables, the way the chess engine this was adapted from built its
// rank/file/diagonal sliding tables, just sized for this board instead of
// an 8x8 one.

// pieceMoveDirs lists, for every raw and promoted piece/color combination,
// the directions that piece steps exactly one square in. Sliding pieces
// (raw Bishop/Rook) have no entry here - their attacks come entirely from
// the ray scan in bishopAttack/rookAttack. Promoted Bishop/Rook additionally
// step like a king in the orthogonal/diagonal directions their slide does
// not already cover (the horse/dragon "gold-like" step).
var pieceMoveDirs = map[Piece][]Direction{
	WKing: {N, NE, E, SE, S, SW, W, NW},
	WGold: {N, NE, E, S, W, NW},
	WSilver: {N, NE, SE, SW, NW},
	WPawn: {N},
	WSilverProm: {N, NE, E, S, W, NW},
	WPawnProm:   {N, NE, E, S, W, NW},
	WBishopProm: {N, E, S, W},
	WRookProm:   {NE, SE, SW, NW},

	BKing: {N, NE, E, SE, S, SW, W, NW},
	BGold: {N, E, SE, S, SW, W},
	BSilver: {NE, SE, S, SW, NW},
	BPawn: {S},
	BSilverProm: {N, E, SE, S, SW, W},
	BPawnProm:   {N, E, SE, S, SW, W},
	BBishopProm: {N, E, S, W},
	BRookProm:   {NE, SE, SW, NW},
}

// relationEntry is the (direction, distance) pair returned by Relation.
type relationEntry struct {
	Dir  Direction
	Dist int
}

var relationTable [SquareNB][SquareNB]relationEntry

// rayTable[sq][dir] lists the squares strictly in direction dir from sq, in
// increasing distance order, stopping at the board edge.
var rayTable [SquareNB][DirectionNB][]Square

// adjAttack[sq][piece] is the single-step attack bitboard for piece from sq.
var adjAttack [SquareNB][PieceLength]Bitboard

func initAttacks() {
	for from := Square(0); from < SquareNB; from++ {
		fr, fc := from.Row(), from.Col()
		for _, dir := range DirectionAll {
			dr, dc := rowColDelta[dir][0], rowColDelta[dir][1]
			for dist := 1; dist <= 4; dist++ {
				nr, nc := fr+dr*dist, fc+dc*dist
				if nr < 0 || nr >= RankNB || nc < 0 || nc >= FileNB {
					break
				}
				to := MakeSquare(nr, nc)
				relationTable[from][to] = relationEntry{Dir: dir, Dist: dist}
				rayTable[from][dir] = append(rayTable[from][dir], to)
			}
		}
	}

	for sq := Square(0); sq < SquareNB; sq++ {
		for p := Piece(0); p < PieceLength; p++ {
			dirs, ok := pieceMoveDirs[p]
			if !ok {
				continue
			}
			var bb Bitboard
			for _, dir := range dirs {
				if ray := rayTable[sq][dir]; len(ray) > 0 {
					bb = bb.PushSquare(ray[0])
				}
			}
			adjAttack[sq][p] = bb
		}
	}
}

// Relation returns the (direction, distance) of `to` as seen from `from`, or
// (N, 0) if the squares are not aligned on a rank, file or diagonal.
func Relation(from, to Square) (Direction, int) {
	e := relationTable[from][to]
	return e.Dir, e.Dist
}

// AdjacentAttack returns the squares `piece` attacks in a single step from
// sq - the generator's short-range move table, and (for sliding pieces) the
// stepping part of a promoted Bishop/Rook's move.
func AdjacentAttack(sq Square, piece Piece) Bitboard {
	return adjAttack[sq][piece]
}

func slideAttack(sq Square, dirs []Direction, occ Bitboard) Bitboard {
	var bb Bitboard
	for _, dir := range dirs {
		for _, to := range rayTable[sq][dir] {
			bb = bb.PushSquare(to)
			if occ.Has(to) {
				break
			}
		}
	}
	return bb
}

var bishopDirs = []Direction{NE, SE, SW, NW}
var rookDirs = []Direction{N, E, S, W}

// BishopAttack returns the diagonal sliding attack set from sq given the
// combined board occupancy occ (applies equally to raw and promoted
// Bishop - callers add the promoted form's extra orthogonal step via
// AdjacentAttack separately).
func BishopAttack(sq Square, occ Bitboard) Bitboard {
	return slideAttack(sq, bishopDirs, occ)
}

// RookAttack returns the orthogonal sliding attack set from sq given the
// combined board occupancy occ.
func RookAttack(sq Square, occ Bitboard) Bitboard {
	return slideAttack(sq, rookDirs, occ)
}
