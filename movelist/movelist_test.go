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

package movelist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/minigo/types"
)

func Test_Deque(t *testing.T) {
	var moveList = MoveList{}
	moveList.SetMinCapacity(8)
	moveList.PushBack(BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece))
	moveList.PushBack(BoardMove(WSilver, MakeSquare(4, 2), MakeSquare(3, 1), false, NoPiece))
	moveList.PushFront(DropMove(MakePiece(White, Gold), MakeSquare(2, 2)))
	moveList.PushFront(BoardMove(WKing, MakeSquare(4, 0), MakeSquare(3, 0), false, NoPiece))
	assert.Equal(t, 4, moveList.Len())
}

func TestMoveList_String(t *testing.T) {
	var moveList = MoveList{}
	moveList.SetMinCapacity(8)
	moveList.PushBack(BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece))
	moveList.PushBack(DropMove(MakePiece(White, Gold), MakeSquare(2, 2)))
	assert.Equal(t, 2, moveList.Len())
	assert.Equal(t, "4d4c", moveList.At(0).Sfen())
	assert.Equal(t, "G*3c", moveList.At(1).Sfen())
	assert.Contains(t, moveList.String(), "MoveList: [2]")
}

func TestMoveList_Clear(t *testing.T) {
	var moveList = MoveList{}
	moveList.PushBack(BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece))
	moveList.PushBack(BoardMove(WPawn, MakeSquare(3, 2), MakeSquare(2, 2), false, NoPiece))
	moveList.Clear()
	assert.Equal(t, 0, moveList.Len())
}

func TestMoveList_PopFrontBack(t *testing.T) {
	var moveList = MoveList{}
	a := BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece)
	b := BoardMove(WPawn, MakeSquare(3, 2), MakeSquare(2, 2), false, NoPiece)
	moveList.PushBack(a)
	moveList.PushBack(b)
	assert.Equal(t, a, moveList.PopFront())
	assert.Equal(t, b, moveList.PopBack())
	assert.Equal(t, 0, moveList.Len())
}

func TestMoveList_StringCsa(t *testing.T) {
	var moveList = MoveList{}
	moveList.PushBack(BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece))
	moveList.PushBack(DropMove(MakePiece(White, Gold), MakeSquare(2, 2)))
	csa := moveList.StringCsa()
	assert.Contains(t, csa, "FU")
	assert.Contains(t, csa, "KI")
}
