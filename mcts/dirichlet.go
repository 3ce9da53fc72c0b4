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

	"github.com/frankkopp/minigo/config"
)

// sampleGamma draws from Gamma(shape, 1) via Marsaglia and Tsang's method.
// Valid for shape > 0; shape < 1 is handled by the standard boost trick of
// sampling Gamma(shape+1,1) and scaling by U^(1/shape).
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// sampleDirichlet draws one vector from Dirichlet(alpha, alpha, ..., alpha)
// of length n, by drawing n independent Gamma(alpha,1) samples and
// normalizing them to sum to 1.
func sampleDirichlet(rng *rand.Rand, n int, alpha float64) []float64 {
	out := make([]float64, n)
	sum := 0.0
	for i := range out {
		out[i] = sampleGamma(rng, alpha)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// AddRootNoise mixes Dirichlet(alpha) exploration noise into the prior of
// every child of the root, weighted by config.Settings.Mcts.DirichletWeight.
// This is the only place randomness enters selection; it must run exactly
// once per search, right after the root's first expansion.
func AddRootNoise(pool *Pool, rootIdx int32, rng *rand.Rand) {
	root := pool.Node(rootIdx)
	if len(root.Children) == 0 {
		return
	}
	noise := sampleDirichlet(rng, len(root.Children), config.Settings.Mcts.DirichletAlpha)
	weight := config.Settings.Mcts.DirichletWeight
	for i, c := range root.Children {
		child := pool.Node(c)
		child.P = (1-weight)*child.P + weight*noise[i]
	}
}
