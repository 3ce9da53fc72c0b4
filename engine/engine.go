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

// Package engine is the lifecycle wrapper that drives a position to either a
// mate-search or an MCTS search result, serializing start/stop through a
// weighted semaphore pair the way a UCI engine serializes searches against a
// single position.
package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/minigo/codec"
	"github.com/frankkopp/minigo/config"
	"github.com/frankkopp/minigo/logging"
	"github.com/frankkopp/minigo/mate"
	"github.com/frankkopp/minigo/mcts"
	"github.com/frankkopp/minigo/position"
	. "github.com/frankkopp/minigo/types"
)

var log = logging.GetLog("engine")

// Evaluator is the external neural-network collaborator's interface: given a
// position, return policy logits (length codec.PolicySize) and a scalar
// value in [0,1] from the position's side-to-move's perspective. The engine
// never ships a real network; callers supply one (or a stub, for tests).
type Evaluator interface {
	Evaluate(p *position.Position) (policy []float64, value float64)
}

// Result is what a search run reports once it stops, regardless of which
// mode produced it.
type Result struct {
	BestMove   Move
	Mate       bool
	SearchTime time.Duration
}

// Engine drives a position through either search mode. One Engine runs one
// search at a time (a StartXSearch call made while a search is running is
// rejected and returns a NullMove result); it does not serialize across
// multiple Engine instances.
type Engine struct {
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	pool    *mcts.Pool
	rootIdx int32

	stopFlag         bool
	lastSearchResult *Result
}

// NewEngine creates an Engine with a fresh MCTS node pool sized from
// config.Settings.Mcts.PoolSizeMByte.
func NewEngine() *Engine {
	return &Engine{
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		pool:          mcts.NewPool(config.Settings.Mcts.PoolSizeMByte),
	}
}

// IsSearching reports whether a search is currently in progress.
func (e *Engine) IsSearching() bool {
	if !e.isRunning.TryAcquire(1) {
		return true
	}
	e.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any in-progress search has finished.
func (e *Engine) WaitWhileSearching() {
	_ = e.isRunning.Acquire(context.TODO(), 1)
	e.isRunning.Release(1)
}

// StopSearch requests the current MCTS search to stop after its current
// batch and waits for it to do so. It has no effect on a mate search,
// which is depth-bounded and runs to completion or proof.
func (e *Engine) StopSearch() {
	e.stopFlag = true
	e.WaitWhileSearching()
}

// LastResult returns the most recently completed search's result, or nil if
// no search has completed yet.
func (e *Engine) LastResult() *Result {
	return e.lastSearchResult
}

// StartMateSearch blocks the calling goroutine and runs the odd-ply DFS mate
// search on p up to maxDepth, following exactly the do/undo chain
// SolveCheckmateDfs performs; it does not mutate p.
func (e *Engine) StartMateSearch(p *position.Position, maxDepth int) Result {
	_ = e.initSemaphore.Acquire(context.TODO(), 1)
	if !e.isRunning.TryAcquire(1) {
		e.initSemaphore.Release(1)
		log.Error("engine: mate search requested while another search is running")
		return Result{BestMove: NullMove}
	}
	e.stopFlag = false
	e.initSemaphore.Release(1)
	defer e.isRunning.Release(1)

	start := time.Now()
	found, m := mate.SolveCheckmateDfs(p, maxDepth)
	result := Result{BestMove: m, Mate: found, SearchTime: time.Since(start)}
	e.lastSearchResult = &result
	return result
}

// StartMctsSearch blocks the calling goroutine and runs up to simulations
// MCTS playouts rooted at p, using eval for every newly-expanded leaf.
// Previous-root subtree reuse is attempted via lastMove/reuse. Evaluation of
// each batch's leaves runs concurrently through mcts.Evaluate, matching the
// sole parallel region described for the core search.
func (e *Engine) StartMctsSearch(p *position.Position, simulations int, eval Evaluator, lastMove Move, reuse bool) Result {
	_ = e.initSemaphore.Acquire(context.TODO(), 1)
	if !e.isRunning.TryAcquire(1) {
		e.initSemaphore.Release(1)
		log.Error("engine: mcts search requested while another search is running")
		return Result{BestMove: NullMove}
	}
	e.stopFlag = false
	e.initSemaphore.Release(1)
	defer e.isRunning.Release(1)

	start := time.Now()
	e.rootIdx = e.pool.SetRoot(e.rootIdx, lastMove, reuse)

	batchSize := config.Settings.Mcts.DefaultBatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	var rng = newRootRng()
	noiseApplied := false

	done := 0
	for done < simulations && !e.stopFlag {
		n := batchSize
		if done+n > simulations {
			n = simulations - done
		}

		leaves := make([]mcts.LeafInput, 0, n)
		var mu sync.Mutex
		for i := 0; i < n; i++ {
			leafPos := p.Clone()
			leafIdx := mcts.SelectLeaf(e.pool, e.rootIdx, leafPos)
			policy, value := eval.Evaluate(leafPos)
			mu.Lock()
			leaves = append(leaves, mcts.LeafInput{NodeIdx: leafIdx, Position: leafPos, Policy: policy, Value: value})
			mu.Unlock()
		}

		mcts.Evaluate(e.pool, leaves)

		if !noiseApplied {
			mcts.AddRootNoise(e.pool, e.rootIdx, rng)
			noiseApplied = true
		}

		for _, leaf := range leaves {
			mcts.Backprop(e.pool, leaf.NodeIdx, e.rootIdx)
		}

		done += n
	}

	best := mcts.BestMove(e.pool, e.rootIdx)
	result := Result{BestMove: best, SearchTime: time.Since(start)}
	e.lastSearchResult = &result
	return result
}

// Dump exposes the root distribution of the most recent MCTS search for
// reservoir recording.
func (e *Engine) Dump(targetPruning, removeZeros bool) (int32, float64, []mcts.MoveVisit) {
	return mcts.Dump(e.pool, e.rootIdx, targetPruning, removeZeros)
}

// PolicySize is re-exported for convenience of Evaluator implementations
// that need to size their logits slice.
const PolicySize = codec.PolicySize
