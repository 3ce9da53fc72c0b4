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

// Package mcts implements a zero-allocation Monte Carlo Tree Search over a
// preallocated node pool: PUCT selection with virtual loss, externally
// supplied batched leaf evaluation, backpropagation and target-pruned
// distribution extraction.
package mcts

import (
	"sync"

	"github.com/frankkopp/minigo/logging"
	. "github.com/frankkopp/minigo/types"
)

var log = logging.GetLog("mcts")

// sentinelIdx is the reserved "no parent"/"unused" slot; the root always
// lives at index 1.
const sentinelIdx int32 = 0

// RootIdx is the pool slot the root of a search always occupies.
const RootIdx int32 = 1

// approxNodeBytes is the size budget divisor used to turn a memory budget
// into a node count; it need only be in the right ballpark since the pool
// never reallocates once sized.
const approxNodeBytes = 96

// Node is one slot of the pool's flat arena. Nodes reference each other by
// slot index, never by pointer, so the whole tree can be reused across
// searches without ever freeing memory.
type Node struct {
	N        int32
	W        float64
	V        float64
	P        float64
	Move     Move
	Parent   int32
	Children []int32
	Terminal bool
	VLoss    int32
	Used     bool
}

func (n *Node) clear() {
	*n = Node{}
}

// Pool is the preallocated node arena. All field mutation outside of
// allocation is the caller's responsibility to serialize (selection and
// backpropagation run single-threaded per §5); only slot allocation during
// evaluation needs mu.
type Pool struct {
	nodes  []Node
	mu     sync.Mutex
	cursor int
	used   int
}

// NewPool sizes a pool from a memory budget in megabytes, matching the way
// the teacher's transposition table turns a memory budget into an entry
// count.
func NewPool(budgetMByte int) *Pool {
	if budgetMByte <= 0 {
		budgetMByte = 512
	}
	n := (budgetMByte * 1024 * 1024) / approxNodeBytes
	if n < 2 {
		n = 2
	}
	return &Pool{nodes: make([]Node, n)}
}

// Len returns the pool's total slot count.
func (pl *Pool) Len() int { return len(pl.nodes) }

// UsedCount returns the number of currently-live (non-free) slots.
func (pl *Pool) UsedCount() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.used
}

// Node returns a pointer to the slot at idx. Callers in the single-threaded
// selection/backprop phases may read and write it directly.
func (pl *Pool) Node(idx int32) *Node {
	return &pl.nodes[idx]
}

// Clear resets every slot to its zero value.
func (pl *Pool) Clear() {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	for i := range pl.nodes {
		pl.nodes[i] = Node{}
	}
	pl.cursor = 0
	pl.used = 0
}

// Alloc claims a free slot (Used == false), marks it used and returns its
// index. It probes linearly, modulo the pool size, from the last allocation
// cursor, skipping the reserved sentinel slot 0. Panics if the whole pool is
// occupied - per spec.md §7, pool exhaustion is not expected for a budget
// sized to the workload, and a bounded probe guarantees this always
// terminates rather than looping forever.
func (pl *Pool) Alloc() int32 {
	pl.mu.Lock()
	defer pl.mu.Unlock()
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

// SetRoot prepares the pool for a new search from scratch position, rooted
// at the given slot. When reuse is true and lastMove matches one of
// prevRoot's children, that child is promoted to root and every sibling
// subtree is reclaimed via eliminateExcept; otherwise the whole pool is
// cleared and slot 1 becomes a fresh root.
func (pl *Pool) SetRoot(prevRoot int32, lastMove Move, reuse bool) int32 {
	if reuse && prevRoot != sentinelIdx && pl.nodes[prevRoot].Used {
		for _, c := range pl.nodes[prevRoot].Children {
			if pl.nodes[c].Used && pl.nodes[c].Move == lastMove {
				pl.eliminateExcept(prevRoot, c)
				return c
			}
		}
	}
	pl.Clear()
	pl.mu.Lock()
	pl.nodes[RootIdx] = Node{Used: true}
	pl.used = 1
	pl.cursor = int(RootIdx) + 1
	pl.mu.Unlock()
	return RootIdx
}

// eliminateExcept walks every node reachable from root, clearing and
// reclaiming all of them except keep and keep's own subtree.
func (pl *Pool) eliminateExcept(root, keep int32) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	var walk func(idx int32)
	walk = func(idx int32) {
		if idx == keep {
			return
		}
		children := pl.nodes[idx].Children
		for _, c := range children {
			walk(c)
		}
		if idx != root {
			pl.nodes[idx].clear()
			pl.used--
		}
	}
	walk(root)
	pl.nodes[root].clear()
	pl.used--
}
