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

// Package mate implements the odd-ply iterative-deepening DFS checkmate
// search: alternating attack/defense layers, repetition-aware pruning and
// the uchifuzume (dropped-pawn mate) exclusion.
package mate

import (
	"github.com/frankkopp/minigo/config"
	"github.com/frankkopp/minigo/logging"
	"github.com/frankkopp/minigo/position"
	. "github.com/frankkopp/minigo/types"
)

var log = logging.GetLog("mate")

// SolveCheckmateDfs tries odd depths 1, 3, 5, ... up to maxDepth (inclusive,
// rounded down to the nearest odd number) and returns the first mating move
// found, or (false, NullMove) if none of the depths prove a mate. p is left
// unchanged (every DoMove during the search is undone before returning).
func SolveCheckmateDfs(p *position.Position, maxDepth int) (bool, Move) {
	if maxDepth <= 0 {
		maxDepth = config.Settings.Mate.MaxDepth
	}
	for d := 1; d <= maxDepth; d += 2 {
		if mate, m := attack(p, d); mate {
			log.Debugf("mate found at depth %d: %s", d, m.Sfen())
			return true, m
		}
	}
	return false, NullMove
}

// attack tries every move for the side to move (the attacker). A candidate
// must give check; if it also produces a check-repetition the defender has
// been forced to shuffle indefinitely under continuous check, which this
// search treats as a won line for the attacker (see the Open Question
// resolution documented in DESIGN.md). An ordinary repetition is a dead end
// for this candidate, not a proof of mate, so search continues with the next
// move.
func attack(p *position.Position, d int) (bool, Move) {
	if d <= 0 {
		return false, NullMove
	}
	if p.Ply() >= MaxPly {
		return false, NullMove
	}

	moves := p.GenerateMoves(true, true, false, false)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		p.DoMove(m)

		if !p.InCheck() {
			p.UndoMove()
			continue
		}

		if rep, checkRep := p.IsRepetition(); rep {
			p.UndoMove()
			if checkRep {
				return true, m
			}
			continue
		}

		mates := defense(p, d-1)
		p.UndoMove()
		if mates {
			return true, m
		}
	}
	return false, NullMove
}

// defense tries every reply for the defender. No legal reply is mate unless
// the checking move that led here was a pawn drop (uchifuzume: the drop
// itself is the illegal move, not a real mate). Every reply must lead to a
// proven attacker win for defense to report mate; the first reply that
// escapes (no mate, or an ordinary repetition reached by the defender)
// disproves it.
func defense(p *position.Position, d int) bool {
	if d < 0 {
		return false
	}
	if p.Ply() >= MaxPly {
		return false
	}

	moves := p.GenerateMoves(true, true, false, false)
	if moves.Len() == 0 {
		last := p.Kif(p.Ply() - 1)
		if last.IsDrop && last.Piece.GetPieceType() == Pawn {
			return false
		}
		return true
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		p.DoMove(m)

		if rep, checkRep := p.IsRepetition(); rep && !checkRep {
			p.UndoMove()
			return false
		}

		mates, _ := attack(p, d-1)
		p.UndoMove()
		if !mates {
			return false
		}
	}
	return true
}
