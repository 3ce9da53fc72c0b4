package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	. "github.com/frankkopp/minigo/types"
)

func TestSetRootFreshClear(t *testing.T) {
	pool := NewPool(1)
	root := pool.SetRoot(sentinelIdx, NullMove, false)
	assert.EqualValues(t, RootIdx, root)
	assert.True(t, pool.Node(root).Used)
	assert.EqualValues(t, 1, pool.UsedCount())
}

func TestSetRootReusePromotesMatchingChildAndReclaimsSiblings(t *testing.T) {
	pool := NewPool(1)
	root := pool.SetRoot(sentinelIdx, NullMove, false)

	mv1 := BoardMove(WKing, Square(0), Square(1), false, NoPiece)
	mv2 := BoardMove(WKing, Square(0), Square(5), false, NoPiece)

	c1 := pool.Alloc()
	pool.Node(c1).Move = mv1
	pool.Node(c1).Parent = root

	c2 := pool.Alloc()
	pool.Node(c2).Move = mv2
	pool.Node(c2).Parent = root

	grandchild := pool.Alloc()
	pool.Node(grandchild).Parent = c1
	pool.Node(c1).Children = []int32{grandchild}

	pool.Node(root).Children = []int32{c1, c2}

	usedBefore := pool.UsedCount()
	assert.Equal(t, 4, usedBefore)

	newRoot := pool.SetRoot(root, mv1, true)
	assert.Equal(t, c1, newRoot)
	assert.True(t, pool.Node(newRoot).Used)
	assert.False(t, pool.Node(c2).Used)
	assert.False(t, pool.Node(root).Used)
	assert.True(t, pool.Node(grandchild).Used)
}

func TestSetRootReuseNoMatchFallsBackToFullClear(t *testing.T) {
	pool := NewPool(1)
	root := pool.SetRoot(sentinelIdx, NullMove, false)

	mv1 := BoardMove(WKing, Square(0), Square(1), false, NoPiece)
	c1 := pool.Alloc()
	pool.Node(c1).Move = mv1
	pool.Node(root).Children = []int32{c1}

	other := BoardMove(WKing, Square(3), Square(4), false, NoPiece)
	newRoot := pool.SetRoot(root, other, true)
	assert.EqualValues(t, RootIdx, newRoot)
	assert.Equal(t, 1, pool.UsedCount())
}

func TestAllocSkipsSentinelAndPanicsOnExhaustion(t *testing.T) {
	pool := NewPool(1)
	_ = pool.SetRoot(sentinelIdx, NullMove, false)

	for i := 2; i < pool.Len(); i++ {
		pool.Alloc()
	}

	assert.Panics(t, func() {
		pool.Alloc()
	})
}
