package mcts

import (
	"math/rand"
	"testing"

	"github.com/frankkopp/minigo/position"
	"github.com/stretchr/testify/assert"
	. "github.com/frankkopp/minigo/types"
)

func newTestRoot(pool *Pool) int32 {
	return pool.SetRoot(sentinelIdx, NullMove, false)
}

func testStartPosition(t *testing.T) *position.Position {
	t.Helper()
	return position.New()
}

// TestPuctDeterministicPriorityWithConstantPolicyAndValue builds a root with
// three never-visited children sharing the same prior and value; PUCT must
// prefer them in an order fully determined by the formula (here, all tied,
// so the first-encountered child wins every time since none has been
// visited yet).
func TestPuctDeterministicPriorityWithConstantPolicyAndValue(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)
	pool.Node(root).N = 10

	var children []int32
	for i := 0; i < 3; i++ {
		c := pool.Alloc()
		pool.Node(c).P = 1.0 / 3.0
		pool.Node(c).Move = BoardMove(WKing, Square(i), Square(i+5), false, NoPiece)
		children = append(children, c)
	}
	pool.Node(root).Children = children

	var picked int32 = -1
	bestScore := -1.0
	for _, c := range children {
		s := puct(pool.Node(root), pool.Node(c))
		if s > bestScore {
			bestScore = s
			picked = c
		}
	}
	assert.Equal(t, children[0], picked)

	// visiting one child should change its score relative to the others
	pool.Node(children[0]).N = 5
	pool.Node(children[0]).W = 1
	scoreAfter := puct(pool.Node(root), pool.Node(children[0]))
	assert.NotEqual(t, bestScore, scoreAfter)
}

func TestPuctTerminalOverrides(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)
	pool.Node(root).N = 4

	winning := pool.Alloc()
	pool.Node(winning).Terminal = true
	pool.Node(winning).V = 0
	pool.Node(winning).P = 0.1

	losing := pool.Alloc()
	pool.Node(losing).Terminal = true
	pool.Node(losing).V = 1
	pool.Node(losing).P = 0.9

	assert.True(t, puct(pool.Node(root), pool.Node(winning)) > 1e300)
	assert.Equal(t, -1.0, puct(pool.Node(root), pool.Node(losing)))
}

func TestSelectLeafAppliesVirtualLossAlongPath(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)

	child := pool.Alloc()
	pool.Node(child).Move = BoardMove(WKing, Square(0), Square(1), false, NoPiece)
	pool.Node(child).P = 1.0
	pool.Node(root).Children = []int32{child}

	p := testStartPosition(t)
	leaf := SelectLeaf(pool, root, p)
	assert.Equal(t, child, leaf)
	assert.EqualValues(t, 1, pool.Node(root).VLoss)
	assert.EqualValues(t, 1, pool.Node(child).VLoss)
}

func TestBackpropFlipsValueAlternatingPlies(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)
	child := pool.Alloc()
	pool.Node(child).Parent = root
	pool.Node(child).VLoss = 1
	pool.Node(child).V = 0.8
	pool.Node(root).VLoss = 1

	Backprop(pool, child, root)

	assert.EqualValues(t, 1, pool.Node(child).N)
	assert.InDelta(t, 0.8, pool.Node(child).W, 1e-9)
	assert.EqualValues(t, 0, pool.Node(child).VLoss)

	assert.EqualValues(t, 1, pool.Node(root).N)
	assert.InDelta(t, 0.2, pool.Node(root).W, 1e-9)
	assert.EqualValues(t, 0, pool.Node(root).VLoss)
}

func TestSoftmaxSampleDeterministicAtZeroTemperature(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)

	c1 := pool.Alloc()
	pool.Node(c1).N = 3
	pool.Node(c1).Move = BoardMove(WKing, Square(0), Square(1), false, NoPiece)

	c2 := pool.Alloc()
	pool.Node(c2).N = 9
	pool.Node(c2).Move = BoardMove(WKing, Square(0), Square(5), false, NoPiece)

	pool.Node(root).Children = []int32{c1, c2}

	rng := rand.New(rand.NewSource(1))
	m := SoftmaxSample(pool, root, 0, rng)
	assert.Equal(t, pool.Node(c2).Move, m)
}

func TestDumpReportsBreakdownAndQ(t *testing.T) {
	pool := NewPool(1)
	root := newTestRoot(pool)
	pool.Node(root).N = 100
	pool.Node(root).W = 25

	best := pool.Alloc()
	pool.Node(best).N = 80
	pool.Node(best).W = 20
	pool.Node(best).P = 0.6
	pool.Node(best).Move = BoardMove(WKing, Square(0), Square(1), false, NoPiece)

	other := pool.Alloc()
	pool.Node(other).N = 20
	pool.Node(other).W = 15
	pool.Node(other).P = 0.1
	pool.Node(other).Move = BoardMove(WKing, Square(0), Square(5), false, NoPiece)

	pool.Node(root).Children = []int32{best, other}

	sumN, q, moves := Dump(pool, root, false, false)
	assert.EqualValues(t, 100, sumN)
	assert.InDelta(t, 0.75, q, 1e-9)
	assert.Len(t, moves, 2)
}
