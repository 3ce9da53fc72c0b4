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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/minigo/types"
)

func TestNewStartPosition(t *testing.T) {
	p := New()
	assert.Equal(t, White, p.SideToMove())
	assert.Equal(t, uint16(0), p.Ply())
	assert.False(t, p.InCheck())
	assert.Equal(t, StartposSfen, p.Sfen())
}

func TestSfenRoundtrip(t *testing.T) {
	sfens := []string{
		StartposSfen,
		"5/5/5/5/4K w GgSsBbRrPp 1",
		"2+R2/5/2k2/5/2K2 b - 1",
	}
	for _, sfen := range sfens {
		p, err := NewSfen(sfen)
		assert.NoError(t, err)
		assert.Equal(t, sfen, p.Sfen())
	}
}

func TestDoUndoSymmetry(t *testing.T) {
	p := New()
	before := p.Sfen()
	beforeBoardHash, beforeHandHash := p.Hash()

	moves := p.GenerateMoves(true, true, false, false)
	assert.True(t, moves.Len() > 0)

	m := moves.At(0)
	p.DoMove(m)
	assert.Equal(t, uint16(1), p.Ply())
	assert.Equal(t, Black, p.SideToMove())

	p.UndoMove()
	assert.Equal(t, uint16(0), p.Ply())
	assert.Equal(t, before, p.Sfen())
	afterBoardHash, afterHandHash := p.Hash()
	assert.Equal(t, beforeBoardHash, afterBoardHash)
	assert.Equal(t, beforeHandHash, afterHandHash)
}

func TestDoMoveNeverCapturesKing(t *testing.T) {
	p := New()
	for ply := 0; ply < 6; ply++ {
		moves := p.GenerateMoves(true, true, false, false)
		assert.True(t, moves.Len() > 0, "no legal moves at ply %d", ply)
		for i := 0; i < moves.Len(); i++ {
			assert.NotEqual(t, King, moves.At(i).CapturePiece.GetPieceType())
		}
		p.DoMove(moves.At(0))
	}
}

// TestDoUndoSymmetryRandomizedPlayout plays a longer random-move sequence
// and undoes it one ply at a time, checking that the Sfen, hash and check
// bitboards at every prior ply are restored exactly, not just the start and
// end positions.
func TestDoUndoSymmetryRandomizedPlayout(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := New()

	type snapshot struct {
		sfen            string
		boardH, handH   Key
		adjCheck, long  Bitboard
	}
	startBoardH, startHandH := p.Hash()
	trail := []snapshot{{
		sfen:     p.Sfen(),
		boardH:   startBoardH,
		handH:    startHandH,
		adjCheck: p.AdjacentCheckBb(),
		long:     p.LongCheckBb(),
	}}

	const plies = 30
	played := 0
	for i := 0; i < plies; i++ {
		moves := p.GenerateMoves(true, true, false, false)
		if moves.Len() == 0 {
			break
		}
		m := moves.At(rng.Intn(moves.Len()))
		p.DoMove(m)
		played++

		boardH, handH := p.Hash()
		trail = append(trail, snapshot{
			sfen:     p.Sfen(),
			boardH:   boardH,
			handH:    handH,
			adjCheck: p.AdjacentCheckBb(),
			long:     p.LongCheckBb(),
		})
	}

	for i := played; i > 0; i-- {
		want := trail[i]
		assert.Equal(t, want.sfen, p.Sfen(), "ply %d sfen mismatch before undo", i)
		boardH, handH := p.Hash()
		assert.Equal(t, want.boardH, boardH, "ply %d board hash mismatch before undo", i)
		assert.Equal(t, want.handH, handH, "ply %d hand hash mismatch before undo", i)
		assert.Equal(t, want.adjCheck, p.AdjacentCheckBb(), "ply %d adjacent-check bitboard mismatch", i)
		assert.Equal(t, want.long, p.LongCheckBb(), "ply %d long-check bitboard mismatch", i)
		p.UndoMove()
	}

	assert.Equal(t, trail[0].sfen, p.Sfen())
	assert.Equal(t, uint16(0), p.Ply())
}

func TestInCheck(t *testing.T) {
	p, err := NewSfen("4k/5/5/5/r3K b - 1")
	assert.NoError(t, err)
	assert.True(t, p.InCheck())
	assert.True(t, p.AdjacentCheckBb() == EmptyBb)
	assert.True(t, p.LongCheckBb() != EmptyBb)

	moves := p.GenerateMoves(true, true, false, false)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		assert.True(t, m.Piece.GetPieceType() == King || m.To == MakeSquare(4, 0))
	}
}

func TestNifuPreventsSecondPawnDrop(t *testing.T) {
	p, err := NewSfen("4k/5/5/P4/4K b P 1")
	assert.NoError(t, err)
	moves := p.GenerateMoves(false, true, false, false)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.IsDrop && m.Piece.GetPieceType() == Pawn {
			assert.NotEqual(t, 0, m.To.Col())
		}
	}
}

func TestPromotionOfferedInZone(t *testing.T) {
	p, err := NewSfen("4k/P4/5/5/4K b - 1")
	assert.NoError(t, err)
	moves := p.GenerateMoves(true, false, false, false)
	sawPromo := false
	sawPlain := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.Piece == WPawn {
			if m.Promotion {
				sawPromo = true
			} else {
				sawPlain = true
			}
		}
	}
	assert.True(t, sawPromo)
	assert.False(t, sawPlain, "a pawn pushed to the last rank must promote")
}

func TestRepetitionDetection(t *testing.T) {
	p, err := NewSfen("5/5/2k2/5/2K2 b - 1")
	assert.NoError(t, err)

	wDown := MakeSquare(3, 2)
	wUp := MakeSquare(4, 2)
	bDown := MakeSquare(1, 2)
	bUp := MakeSquare(2, 2)

	cycle := func() {
		p.DoMove(BoardMove(WKing, wUp, wDown, false, NoPiece))
		p.DoMove(BoardMove(BKing, bUp, bDown, false, NoPiece))
		p.DoMove(BoardMove(WKing, wDown, wUp, false, NoPiece))
		p.DoMove(BoardMove(BKing, bDown, bUp, false, NoPiece))
	}

	rep, checkRep := p.IsRepetition()
	assert.False(t, rep)
	assert.False(t, checkRep)

	cycle()
	rep, _ = p.IsRepetition()
	assert.False(t, rep)
	assert.Equal(t, 1, p.GetRepetition())

	cycle()
	rep, _ = p.IsRepetition()
	assert.False(t, rep)
	assert.Equal(t, 2, p.GetRepetition())

	cycle()
	rep, checkRep = p.IsRepetition()
	assert.True(t, rep)
	assert.False(t, checkRep)
	assert.Equal(t, 3, p.GetRepetition())
}

func TestCheckRepetitionDetection(t *testing.T) {
	// White's rook perpetually checks Black's king along whichever row the
	// king occupies; Black has no way to escape check permanently.
	p, err := NewSfen("5/5/R3k/5/4K w - 1")
	assert.NoError(t, err)
	assert.True(t, p.InCheck())

	kingHome := MakeSquare(2, 4)
	kingAway := MakeSquare(1, 4)
	rookHome := MakeSquare(2, 0)
	rookAway := MakeSquare(1, 0)

	cycle := func() {
		p.DoMove(BoardMove(BKing, kingHome, kingAway, false, NoPiece))
		p.DoMove(BoardMove(WRook, rookHome, rookAway, false, NoPiece))
		p.DoMove(BoardMove(BKing, kingAway, kingHome, false, NoPiece))
		p.DoMove(BoardMove(WRook, rookAway, rookHome, false, NoPiece))
	}

	cycle()
	cycle()
	cycle()

	rep, checkRep := p.IsRepetition()
	assert.True(t, rep)
	assert.True(t, checkRep, "the checking side's continuous check must be flagged")
}

func TestClone(t *testing.T) {
	p := New()
	moves := p.GenerateMoves(true, true, false, false)
	p.DoMove(moves.At(0))

	cp := p.Clone()
	assert.Equal(t, p.Sfen(), cp.Sfen())
	assert.Equal(t, p.Ply(), cp.Ply())

	cp.DoMove(cp.GenerateMoves(true, true, false, false).At(0))
	assert.NotEqual(t, p.Ply(), cp.Ply(), "Clone must be an independent copy")
}

// perftResults holds the known leaf-node counts from the startpos, indexed
// by depth. Depths 5 and 6 grow past 500k nodes, so they run in
// TestPerftStartposLong, which is skipped under -short. Depth 7 is not run.
var perftResults = map[int]uint64{
	1: 14,
	2: 181,
	3: 2_512,
	4: 35_401,
	5: 533_203,
	6: 8_276_188,
	7: 132_680_698,
}

func TestPerftStartpos(t *testing.T) {
	maxDepth := 4
	for d := 1; d <= maxDepth; d++ {
		p := New()
		pf := StartPerft(p, d)
		assert.Equal(t, perftResults[d], pf.Nodes, "perft depth %d", d)
		assert.Equal(t, uint16(0), p.Ply(), "perft must leave the position unchanged")
	}
}

func TestPerftStartposLong(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long perft depths in -short mode")
	}
	for d := 5; d <= 6; d++ {
		p := New()
		pf := StartPerft(p, d)
		assert.Equal(t, perftResults[d], pf.Nodes, "perft depth %d", d)
	}
}

func TestFlatten(t *testing.T) {
	p := New()
	moves := p.GenerateMoves(true, true, false, false)
	p.DoMove(moves.At(0))

	flat := p.Flatten()
	assert.Equal(t, uint16(0), flat.Ply())
	assert.Equal(t, p.Sfen(), flat.Sfen())
	fb, fh := flat.Hash()
	pb, ph := p.Hash()
	assert.Equal(t, pb, fb)
	assert.Equal(t, ph, fh)
}
