package codec

import (
	"testing"

	"github.com/frankkopp/minigo/position"
	"github.com/stretchr/testify/assert"
	. "github.com/frankkopp/minigo/types"
)

func TestMoveToPolicyIndexInRange(t *testing.T) {
	p := position.New()
	moves := p.GenerateMoves(true, true, false, false)
	for i := 0; i < moves.Len(); i++ {
		idx := MoveToPolicyIndex(moves.At(i), p.SideToMove())
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, PolicySize)
	}
}

func TestMoveToPolicyIndexBijectionOverLegalMoves(t *testing.T) {
	p := position.New()
	moves := p.GenerateMoves(true, true, false, false)
	seen := make(map[int]bool)
	for i := 0; i < moves.Len(); i++ {
		idx := MoveToPolicyIndex(moves.At(i), p.SideToMove())
		assert.False(t, seen[idx], "policy index collision for move %s", moves.At(i).Sfen())
		seen[idx] = true
	}
}

func TestMoveToPolicyIndexBlackPerspectiveMirrorsSquares(t *testing.T) {
	m := BoardMove(WKing, Square(0), Square(1), false, NoPiece)
	white := MoveToPolicyIndex(m, White)
	black := MoveToPolicyIndex(m, Black)
	assert.NotEqual(t, white, black)
}

func TestPolicyIndicesMatchesPerMoveComputation(t *testing.T) {
	p := position.New()
	moves := p.GenerateMoves(true, true, false, false)
	indices := PolicyIndices(moves, p.SideToMove())
	assert.Equal(t, moves.Len(), len(indices))
	for i := 0; i < moves.Len(); i++ {
		assert.Equal(t, MoveToPolicyIndex(moves.At(i), p.SideToMove()), indices[i])
	}
}
