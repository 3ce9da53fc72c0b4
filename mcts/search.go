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

package mcts

import (
	"math"
	"math/rand"
	"sync"

	"github.com/frankkopp/minigo/codec"
	"github.com/frankkopp/minigo/config"
	"github.com/frankkopp/minigo/position"
	. "github.com/frankkopp/minigo/types"
)

// cOfN is the AlphaZero PUCT exploration schedule: C(n) = CInit +
// log2((1+n+CBase)/CBase).
func cOfN(n int32) float64 {
	base := config.Settings.Mcts.CBase
	return math.Log2((1+float64(n)+base)/base) + config.Settings.Mcts.CInit
}

// puct scores child from parent's perspective, including the forced-playout
// and terminal-node overrides.
func puct(parent, child *Node) float64 {
	if child.Terminal {
		if child.V == 0 {
			return math.Inf(1)
		}
		if child.V == 1 {
			return -1
		}
	}

	if config.Settings.Mcts.ForcedPlayouts {
		threshold := math.Sqrt(2 * child.P * float64(parent.N))
		if float64(child.N) < threshold {
			return math.Inf(1)
		}
	}

	denom := float64(child.N) + float64(child.VLoss)
	q := 0.0
	if denom != 0 {
		q = 1 - (child.W+float64(child.VLoss))/denom
	}

	u := cOfN(parent.N) * child.P * math.Sqrt(float64(parent.N)+float64(parent.VLoss)) / (1 + float64(child.N) + float64(child.VLoss))
	return q + u
}

// SelectLeaf walks from rootIdx to an unexpanded or terminal node, applying
// virtual loss at every node visited and replaying the descent on pos so pos
// reflects the selected leaf on return. It returns the leaf's slot index.
func SelectLeaf(pool *Pool, rootIdx int32, pos *position.Position) int32 {
	idx := rootIdx
	pool.Node(idx).VLoss++
	for {
		n := pool.Node(idx)
		if n.Terminal || len(n.Children) == 0 {
			return idx
		}
		best := n.Children[0]
		bestScore := math.Inf(-1)
		for _, c := range n.Children {
			s := puct(n, pool.Node(c))
			if s > bestScore {
				bestScore = s
				best = c
			}
		}
		child := pool.Node(best)
		child.VLoss++
		pos.DoMove(child.Move)
		idx = best
	}
}

// LeafInput bundles one selected leaf together with the position it was
// selected from and the externally-supplied network output for it.
type LeafInput struct {
	NodeIdx  int32
	Position *position.Position
	Policy   []float64 // length codec.PolicySize
	Value    float64   // in [0,1], from the leaf's side-to-move's perspective
}

// Evaluate expands every leaf in a batch concurrently - the search's sole
// parallel region. Each leaf either resolves to a terminal (repetition,
// no legal moves, or the ply cap) or gets one child per legal move with a
// softmax-normalized prior drawn from Policy restricted to legal moves.
func Evaluate(pool *Pool, leaves []LeafInput) {
	var wg sync.WaitGroup
	wg.Add(len(leaves))
	for _, leaf := range leaves {
		leaf := leaf
		go func() {
			defer wg.Done()
			evaluateOne(pool, leaf)
		}()
	}
	wg.Wait()
}

func setTerminal(pool *Pool, idx int32, v float64) {
	pool.mu.Lock()
	n := pool.Node(idx)
	n.Terminal = true
	n.V = v
	pool.mu.Unlock()
}

func evaluateOne(pool *Pool, leaf LeafInput) {
	pool.mu.Lock()
	alreadyExpanded := pool.Node(leaf.NodeIdx).N > 0
	pool.mu.Unlock()
	if alreadyExpanded {
		return
	}

	p := leaf.Position
	moves := p.GenerateMoves(true, true, false, false)

	if rep, checkRep := p.IsRepetition(); rep {
		if checkRep {
			setTerminal(pool, leaf.NodeIdx, 1)
		} else if p.SideToMove() == Black {
			setTerminal(pool, leaf.NodeIdx, 1)
		} else {
			setTerminal(pool, leaf.NodeIdx, 0)
		}
		return
	}

	if p.Ply() >= MaxPly {
		setTerminal(pool, leaf.NodeIdx, 0.5)
		return
	}

	if moves.Len() == 0 {
		last := p.Kif(p.Ply() - 1)
		if last.IsDrop && last.Piece.GetPieceType() == Pawn {
			setTerminal(pool, leaf.NodeIdx, 1)
		} else {
			setTerminal(pool, leaf.NodeIdx, 0)
		}
		return
	}

	indices := codec.PolicyIndices(moves, p.SideToMove())
	priors := softmaxOverIndices(leaf.Policy, indices)

	pool.mu.Lock()
	defer pool.mu.Unlock()
	n := pool.Node(leaf.NodeIdx)
	if n.N > 0 {
		return
	}
	n.V = leaf.Value
	children := make([]int32, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		c := pool.allocLocked()
		child := pool.Node(c)
		child.Move = moves.At(i)
		child.P = priors[i]
		child.Parent = leaf.NodeIdx
		children[i] = c
	}
	n.Children = children
}

// allocLocked is Alloc's body without its own locking, for callers that
// already hold pool.mu.
func (pl *Pool) allocLocked() int32 {
	n := len(pl.nodes)
	for i := 0; i < n; i++ {
		idx := (pl.cursor + i) % n
		if int32(idx) == sentinelIdx {
			continue
		}
		if !pl.nodes[idx].Used {
			pl.nodes[idx] = Node{Used: true}
			pl.cursor = idx + 1
			pl.used++
			return int32(idx)
		}
	}
	panic("mcts: node pool exhausted")
}

func softmaxOverIndices(policy []float64, indices []int) []float64 {
	max := math.Inf(-1)
	for _, idx := range indices {
		if policy[idx] > max {
			max = policy[idx]
		}
	}
	priors := make([]float64, len(indices))
	sum := 0.0
	for i, idx := range indices {
		e := math.Exp(policy[idx] - max)
		priors[i] = e
		sum += e
	}
	for i := range priors {
		priors[i] /= sum
	}
	return priors
}

// Backprop propagates leaf's value up to and including root, flipping the
// perspective (1-v) at every other ply so values alternate correctly between
// the two sides, and removes the virtual loss SelectLeaf added along the way.
func Backprop(pool *Pool, leafIdx, rootIdx int32) {
	idx := leafIdx
	v := pool.Node(leafIdx).V
	flip := false
	for {
		n := pool.Node(idx)
		val := v
		if flip {
			val = 1 - v
		}
		n.W += val
		n.N++
		n.VLoss--
		if idx == rootIdx {
			return
		}
		idx = n.Parent
		flip = !flip
	}
}

func bestChild(pool *Pool, rootIdx int32) int32 {
	root := pool.Node(rootIdx)
	best := int32(-1)
	bestN := int32(-1)
	for _, c := range root.Children {
		if pool.Node(c).N > bestN {
			bestN = pool.Node(c).N
			best = c
		}
	}
	return best
}

// BestMove returns the move of root's most-visited child, or NullMove if
// root has no children.
func BestMove(pool *Pool, rootIdx int32) Move {
	best := bestChild(pool, rootIdx)
	if best < 0 {
		return NullMove
	}
	return pool.Node(best).Move
}

// qOf returns a node's value estimate from its parent's perspective, 0 if it
// has never been visited.
func qOf(n *Node) float64 {
	if n.N == 0 {
		return 0
	}
	return 1 - n.W/float64(n.N)
}

// SoftmaxSample samples one of root's children with probability proportional
// to exp((n_i - n_max)/T), and returns its move. T <= 0 is treated as
// deterministic (equivalent to BestMove).
func SoftmaxSample(pool *Pool, rootIdx int32, temperature float64, rng *rand.Rand) Move {
	root := pool.Node(rootIdx)
	if len(root.Children) == 0 {
		return NullMove
	}
	if temperature <= 0 {
		return BestMove(pool, rootIdx)
	}

	nMax := int32(-1)
	for _, c := range root.Children {
		if pool.Node(c).N > nMax {
			nMax = pool.Node(c).N
		}
	}

	weights := make([]float64, len(root.Children))
	sum := 0.0
	for i, c := range root.Children {
		w := math.Exp(float64(pool.Node(c).N-nMax) / temperature)
		weights[i] = w
		sum += w
	}

	r := rng.Float64() * sum
	acc := 0.0
	for i, c := range root.Children {
		acc += weights[i]
		if r <= acc {
			return pool.Node(c).Move
		}
	}
	return pool.Node(root.Children[len(root.Children)-1]).Move
}

// Info reports the principal variation (the chain of most-visited children
// from root) and the best child's Q from the mover's perspective.
func Info(pool *Pool, rootIdx int32) (pv []Move, q float64) {
	idx := rootIdx
	for {
		best := bestChild(pool, idx)
		if best < 0 {
			break
		}
		child := pool.Node(best)
		pv = append(pv, child.Move)
		if len(pv) == 1 {
			q = qOf(child)
		}
		idx = best
	}
	return pv, q
}

// MoveVisit pairs a move (rendered as SFEN) with its final visit count, the
// unit dump() reports per root child.
type MoveVisit struct {
	MoveSfen string
	N        int32
}

// Dump reports root's total child visit count, root's own Q (1 - w/n), and a
// per-child (move, visits) breakdown. When targetPruning, every non-best
// child's reported n is reduced for as long as doing so keeps its PUCT score
// (recomputed with the reduced child n and a parent n reduced by the same
// count) below the best child's PUCT score at root's actual n, capped at
// floor(sqrt(2*p*parent_n)) reductions. When removeZeros, children left at
// n==0 (by pruning or otherwise) are omitted from the breakdown.
func Dump(pool *Pool, rootIdx int32, targetPruning, removeZeros bool) (sumN int32, q float64, moves []MoveVisit) {
	root := pool.Node(rootIdx)
	if len(root.Children) == 0 {
		return 0, 0, nil
	}

	bestIdx := bestChild(pool, rootIdx)
	best := pool.Node(bestIdx)
	parentN := float64(root.N)
	bestScore := qOf(best) + cOfN(root.N)*best.P*math.Sqrt(parentN)/(1+float64(best.N))

	for _, c := range root.Children {
		sumN += pool.Node(c).N
	}

	for _, c := range root.Children {
		child := pool.Node(c)
		n := child.N
		if targetPruning && c != bestIdx {
			n = targetPrune(child, bestScore, parentN)
		}
		if removeZeros && n == 0 {
			continue
		}
		moves = append(moves, MoveVisit{MoveSfen: child.Move.Sfen(), N: n})
	}

	return sumN, qOf(root), moves
}

// targetPrune finds the smallest visit count for child (down from its
// actual count, capped at floor(sqrt(2*p*parent_n)) reductions) that still
// scores below bestScore once its PUCT is recomputed with parent_n reduced
// by the same number of removed visits.
func targetPrune(child *Node, bestScore, parentN float64) int32 {
	maxSteps := int32(math.Floor(math.Sqrt(2 * child.P * parentN)))
	q := qOf(child)
	n := child.N
	removed := int32(0)
	for removed < maxSteps && n-removed > 0 {
		candidateN := n - removed - 1
		reducedParentN := parentN - float64(removed+1)
		if reducedParentN < 0 {
			reducedParentN = 0
		}
		score := q + cOfN(int32(reducedParentN))*child.P*math.Sqrt(reducedParentN)/(1+float64(candidateN))
		if score < bestScore {
			removed++
		} else {
			break
		}
	}
	return n - removed
}
