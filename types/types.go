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

// Package types contains the value types and precomputed tables shared by
// every other package of this engine: colors, piece types, pieces, squares,
// directions, bitboards, moves and Zobrist keys.
package types

import (
	"github.com/frankkopp/minigo/logging"
)

var log = logging.GetLog("types")

var initialized = false

// Init initializes the precomputed attack/relation/zobrist tables. Keeps an
// initialized flag so repeated calls (e.g. from test package init order) are
// cheap no-ops.
func Init() {
	if initialized {
		return
	}
	log.Debug("Initializing data types")
	initAttacks()
	initZobrist()
	initialized = true
}

func init() {
	Init()
}

const (
	// MaxPly bounds the per-ply history arrays (hash, check bitboards,
	// sequent-check counters, kif). Exceeding it is a draw-like terminal.
	MaxPly = 512

	// KB, MB, GB are the usual binary byte-size multipliers. The MCTS node
	// pool computes its byte budget with its own 1024*1024 literal.
	KB uint64 = 1024
	MB uint64 = KB * 1024
	GB uint64 = MB * 1024
)
