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

package codec

import (
	"github.com/frankkopp/minigo/position"
	. "github.com/frankkopp/minigo/types"
)

const (
	// HistorySteps is the number of past positions (including the current
	// one) stacked into the AlphaZero-style plane tensor.
	HistorySteps = 8

	// planesPerStep: 10 raw/promoted piece types for White, 10 for Black, 3
	// repetition-count planes (0/1/2-or-more), 5 White hand-count planes, 5
	// Black hand-count planes.
	planesPerStep = 10 + 10 + 3 + 5 + 5

	// constantPlanes: side-to-move and normalized ply count.
	constantPlanes = 2

	// AlphaZeroChannels is the total channel count of the plane stack; each
	// channel is a BoardSize-element (5x5) plane.
	AlphaZeroChannels = HistorySteps*planesPerStep + constantPlanes

	// KPVectorSize is the size of the alternate King-and-Piece sparse
	// feature vector: two king-anchored (square x piece-type x square)
	// tables plus hand counts and three scalar extras.
	KPVectorSize = 2*(BoardSize*19*BoardSize) + 5*2 + 3
)

// FillAlphaZeroPlanes writes the AlphaZero-style plane stack for p into out,
// which must have length AlphaZeroChannels*BoardSize. History steps beyond
// the start of the game (p.Ply() < step) repeat the earliest available
// position, matching the common convention of padding missing history with
// the oldest known state rather than zeros. The result is a pure function of
// p's current state and its own do/undo chain: no network is consulted.
func FillAlphaZeroPlanes(p *position.Position, out []float64) {
	if len(out) != AlphaZeroChannels*BoardSize {
		panic("codec: FillAlphaZeroPlanes: out has the wrong length")
	}

	steps := make([]*position.Position, HistorySteps)
	cur := p
	for i := 0; i < HistorySteps; i++ {
		steps[i] = cur
		if cur.Ply() == 0 {
			continue
		}
		prev := cur.Clone()
		prev.UndoMove()
		cur = prev
	}

	channel := 0
	for _, step := range steps {
		writePiecePlanes(step, White, out, &channel)
		writePiecePlanes(step, Black, out, &channel)
		writeRepetitionPlanes(step, out, &channel)
		writeHandPlanes(step, White, out, &channel)
		writeHandPlanes(step, Black, out, &channel)
	}

	writeConstantPlane(out, &channel, float64(p.SideToMove()))
	writeConstantPlane(out, &channel, float64(p.Ply())/float64(MaxPly))
}

func writePiecePlanes(p *position.Position, c Color, out []float64, channel *int) {
	for _, pt := range PieceTypeAll {
		base := *channel * BoardSize
		piece := pt.GetPiece(c)
		for sq := Square(0); sq < SquareNB; sq++ {
			if p.Board(sq) == piece {
				out[base+int(sq)] = 1
			}
		}
		*channel++
	}
}

func writeRepetitionPlanes(p *position.Position, out []float64, channel *int) {
	rep := p.GetRepetition()
	for i := 0; i < 3; i++ {
		val := 0.0
		if rep == i || (i == 2 && rep >= 2) {
			val = 1
		}
		base := *channel * BoardSize
		for sq := 0; sq < BoardSize; sq++ {
			out[base+sq] = val
		}
		*channel++
	}
}

func writeHandPlanes(p *position.Position, c Color, out []float64, channel *int) {
	for _, pt := range HandPieceTypeAll {
		val := float64(p.Hand(c, pt))
		base := *channel * BoardSize
		for sq := 0; sq < BoardSize; sq++ {
			out[base+sq] = val
		}
		*channel++
	}
}

func writeConstantPlane(out []float64, channel *int, val float64) {
	base := *channel * BoardSize
	for sq := 0; sq < BoardSize; sq++ {
		out[base+sq] = val
	}
	*channel++
}
