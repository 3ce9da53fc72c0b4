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

package config

type mctsConfiguration struct {
	// PoolSizeMByte bounds the preallocated node pool, sized the same way the
	// transposition table sizes itself from a memory budget.
	PoolSizeMByte int

	// CBase and CInit parameterize the AlphaZero PUCT exploration schedule
	// C(n) = CInit + log2((1+n+CBase)/CBase).
	CBase float64
	CInit float64

	ForcedPlayouts  bool
	DirichletAlpha  float64
	DirichletWeight float64

	DefaultBatchSize int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Mcts.PoolSizeMByte = 512
	Settings.Mcts.CBase = 19652
	Settings.Mcts.CInit = 1.25
	Settings.Mcts.ForcedPlayouts = true
	Settings.Mcts.DirichletAlpha = 0.34
	Settings.Mcts.DirichletWeight = 0.25
	Settings.Mcts.DefaultBatchSize = 8
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupMcts() {
	if Settings.Mcts.PoolSizeMByte <= 0 {
		Settings.Mcts.PoolSizeMByte = 512
	}
	if Settings.Mcts.DefaultBatchSize <= 0 {
		Settings.Mcts.DefaultBatchSize = 8
	}
}
