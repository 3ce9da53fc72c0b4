package engine

import (
	"testing"

	"github.com/frankkopp/minigo/codec"
	"github.com/frankkopp/minigo/position"
	"github.com/stretchr/testify/assert"
	. "github.com/frankkopp/minigo/types"
)

type uniformEvaluator struct{}

func (uniformEvaluator) Evaluate(_ *position.Position) ([]float64, float64) {
	return make([]float64, codec.PolicySize), 0.5
}

func TestStartMateSearchFindsKnownMate(t *testing.T) {
	p, err := position.NewSfen("2k2/5/2P2/5/2K2 b G 1")
	assert.NoError(t, err)

	e := NewEngine()
	result := e.StartMateSearch(p, 7)
	assert.True(t, result.Mate)
	assert.NotEqual(t, NullMove, result.BestMove)
	assert.False(t, e.IsSearching())
}

func TestStartMctsSearchReturnsLegalBestMove(t *testing.T) {
	p := position.New()
	legal := p.GenerateMoves(true, true, false, false)

	e := NewEngine()
	result := e.StartMctsSearch(p, 4, uniformEvaluator{}, NullMove, false)

	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.At(i) == result.BestMove {
			found = true
			break
		}
	}
	assert.True(t, found)
	assert.False(t, e.IsSearching())
}

func TestSecondConcurrentSearchIsRejected(t *testing.T) {
	e := NewEngine()
	p, err := position.NewSfen("2k2/5/2P2/5/2K2 b G 1")
	assert.NoError(t, err)

	// a completed search releases isRunning, so simulate contention directly
	assert.True(t, e.isRunning.TryAcquire(1))
	result := e.StartMateSearch(p, 7)
	assert.Equal(t, NullMove, result.BestMove)
	e.isRunning.Release(1)
}
