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

// Package codec maps between engine-native representations (Move, Position)
// and the wire/tensor formats the neural-network collaborator expects: a
// move <-> policy-index bijection over legal moves, and the AlphaZero-style
// plane stack / KP-vector input tensor shapes.
package codec

import (
	"github.com/frankkopp/minigo/movelist"
	. "github.com/frankkopp/minigo/types"
)

const (
	// BoardSize is the number of squares a policy-index's square component
	// ranges over.
	BoardSize = SquareNB

	// boardMoveTypeSlots covers every (promoted, direction, distance) combo:
	// 2 promoted states x 8 directions x 4 distances.
	boardMoveTypeSlots = 2 * 8 * 4

	// dropTypeSlots covers one slot per hand piece type.
	dropTypeSlots = 5

	// PolicySize is the total number of move-policy indices: 69 type slots
	// times 25 squares.
	PolicySize = (boardMoveTypeSlots + dropTypeSlots) * BoardSize
)

// MoveToPolicyIndex maps m to its index in [0, PolicySize), from the
// perspective of stm. For Black to move, squares are mirrored (sq -> 24-sq)
// and the direction is rotated 180 degrees so the network always sees a
// White-to-move view of the board.
func MoveToPolicyIndex(m Move, stm Color) int {
	if m.IsDrop {
		handIdx := m.Piece.GetPieceType().HandIndex()
		sq := int(m.To)
		if stm == Black {
			sq = BoardSize - 1 - sq
		}
		return (boardMoveTypeSlots+handIdx)*BoardSize + sq
	}

	dir, dist := Relation(m.From, m.To)
	if stm == Black {
		dir = dir.Rotate(4)
	}
	promoted := 0
	if m.Promotion {
		promoted = 1
	}
	typeSlot := promoted*32 + int(dir)*4 + (dist - 1)

	sq := int(m.From)
	if stm == Black {
		sq = BoardSize - 1 - sq
	}
	return typeSlot*BoardSize + sq
}

// PolicyIndices returns the policy index of every move in moves, from the
// perspective of stm, in the same order. Used to gather priors for MCTS
// expansion.
func PolicyIndices(moves *movelist.MoveList, stm Color) []int {
	out := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		out[i] = MoveToPolicyIndex(moves.At(i), stm)
	}
	return out
}
