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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/profile"

	"github.com/frankkopp/minigo/codec"
	"github.com/frankkopp/minigo/config"
	"github.com/frankkopp/minigo/engine"
	"github.com/frankkopp/minigo/logging"
	"github.com/frankkopp/minigo/position"
	. "github.com/frankkopp/minigo/types"
)

var log = logging.GetLog("standard")

// uniformEvaluator is a placeholder Evaluator: uniform policy over legal
// moves and a neutral value. It lets "go mcts" be exercised end to end
// without a real neural network, which this repository never ships.
type uniformEvaluator struct{}

func (uniformEvaluator) Evaluate(_ *position.Position) ([]float64, float64) {
	policy := make([]float64, codec.PolicySize)
	return policy, 0.5
}

func main() {
	configFile := flag.String("config", "./config/config.toml", "path to configuration settings file")
	profileMode := flag.String("profile", "", "profiling mode: cpu|mem")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	eng := engine.NewEngine()
	var pos *position.Position
	var lastMove = NullMove

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "isready":
			fmt.Println("readyok")

		case "quit":
			return

		case "position":
			p, m, err := parsePosition(fields[1:])
			if err != nil {
				log.Errorf("position: %v", err)
				continue
			}
			pos = p
			lastMove = m
			fmt.Println("positionok")

		case "go":
			if pos == nil {
				log.Error("go: no position set")
				continue
			}
			if len(fields) < 2 {
				log.Error("go: missing subcommand")
				continue
			}
			switch fields[1] {
			case "mate":
				depth := config.Settings.Mate.MaxDepth
				if len(fields) > 2 {
					if d, err := strconv.Atoi(fields[2]); err == nil {
						depth = d
					}
				}
				result := eng.StartMateSearch(pos, depth)
				reportMateResult(result)

			case "mcts":
				sims := 100
				if len(fields) > 2 {
					if s, err := strconv.Atoi(fields[2]); err == nil {
						sims = s
					}
				}
				result := eng.StartMctsSearch(pos, sims, uniformEvaluator{}, lastMove, true)
				reportMctsResult(result)

			default:
				log.Errorf("go: unknown subcommand %q", fields[1])
			}

		default:
			log.Errorf("unknown command %q", fields[0])
		}
	}
}

// parsePosition interprets "startpos [moves ...]" or "sfen <board> <side>
// <hand> <moveno> [moves ...]" into a Position and the last move applied (or
// NullMove if none).
func parsePosition(fields []string) (*position.Position, Move, error) {
	if len(fields) == 0 {
		return nil, NullMove, fmt.Errorf("missing position spec")
	}

	var sfenParts []string
	var rest []string

	switch fields[0] {
	case "startpos":
		sfenParts = strings.Fields(position.StartposSfen)
		rest = fields[1:]
	case "sfen":
		if len(fields) < 5 {
			return nil, NullMove, fmt.Errorf("sfen requires 4 fields")
		}
		sfenParts = fields[1:5]
		rest = fields[5:]
	default:
		return nil, NullMove, fmt.Errorf("expected startpos or sfen, got %q", fields[0])
	}

	full := strings.Join(sfenParts, " ")
	if len(rest) > 0 && rest[0] == "moves" {
		full += " " + strings.Join(rest, " ")
	}

	p, err := position.NewSfen(full)
	if err != nil {
		return nil, NullMove, err
	}

	last := NullMove
	if p.Ply() > 0 {
		last = p.Kif(p.Ply() - 1)
	}
	return p, last, nil
}

func reportMateResult(r engine.Result) {
	if r.Mate {
		fmt.Printf("mate %s\n", r.BestMove.Sfen())
	} else {
		fmt.Println("mate none")
	}
}

func reportMctsResult(r engine.Result) {
	fmt.Printf("bestmove %s\n", r.BestMove.Sfen())
}
