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

package position

import (
	. "github.com/frankkopp/minigo/types"
)

// Perft counts leaf nodes of the legal move tree to a fixed depth, the
// standard cross-check of a move generator: any divergence from the known
// node counts means legality filtering, promotion emission or drop rules
// have drifted.
type Perft struct {
	Nodes            uint64
	CaptureCounter   uint64
	DropCounter      uint64
	PromotionCounter uint64
	CheckCounter     uint64
}

// StartPerft runs Perft from p to depth (minimum 1) and returns the counters.
// p is left unchanged.
func StartPerft(p *Position, depth int) Perft {
	if depth <= 0 {
		depth = 1
	}
	var pf Perft
	pf.Nodes = pf.miniMax(p, depth)
	return pf
}

func (pf *Perft) miniMax(p *Position, depth int) uint64 {
	moves := p.GenerateMoves(true, true, false, false)
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if depth > 1 {
			p.DoMove(m)
			nodes += pf.miniMax(p, depth-1)
			p.UndoMove()
			continue
		}

		if m.IsDrop {
			pf.DropCounter++
		} else if m.CapturePiece != NoPiece {
			pf.CaptureCounter++
		}
		if m.Promotion {
			pf.PromotionCounter++
		}

		p.DoMove(m)
		nodes++
		if p.InCheck() {
			pf.CheckCounter++
		}
		p.UndoMove()
	}
	return nodes
}
