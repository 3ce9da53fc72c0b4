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

// Package reservoir is an append-only JSONL store for self-play training
// records: one game per line, collaborator-owned content the core never
// interprets.
package reservoir

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/frankkopp/minigo/config"
	"github.com/frankkopp/minigo/logging"
)

var log = logging.GetLog("reservoir")

// MctsResult is one entry of a Record's mcts_result list: the distribution
// mcts.Dump extracted at one searched ply.
type MctsResult struct {
	SumN  int32            `json:"sum_n"`
	Q     float64          `json:"q"`
	Moves []MctsResultMove `json:"moves"`
}

// MctsResultMove is a single (move, visit count) pair within an MctsResult.
type MctsResultMove struct {
	MoveSfen string `json:"move_sfen"`
	N        int32  `json:"n"`
}

// Record is one self-play game, ready to append to the reservoir.
type Record struct {
	Ply                int          `json:"ply"`
	SfenKif            []string     `json:"sfen_kif"`
	MctsResult         []MctsResult `json:"mcts_result"`
	LearningTargetPlys []int        `json:"learning_target_plys"`
	Winner             int          `json:"winner"` // 0 = White, 1 = Black, 2 = draw
	Timestamp          int64        `json:"timestamp"`
}

// Writer appends Records to a JSONL file, flushing its buffer every
// FlushEveryN writes so a crash loses at most a bounded number of records.
type Writer struct {
	file        *os.File
	buf         *bufio.Writer
	flushEveryN int
	sinceFlush  int
}

// NewWriter opens path for appending (creating it if absent) and wraps it in
// a buffered JSONL writer using the configured flush cadence.
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		path = config.Settings.Reservoir.FilePath
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("reservoir: open %s: %w", path, err)
	}
	return &Writer{
		file:        f,
		buf:         bufio.NewWriter(f),
		flushEveryN: config.Settings.Reservoir.FlushEveryN,
	}, nil
}

// Append writes r as one JSON line and flushes once every FlushEveryN calls.
func (w *Writer) Append(r Record) error {
	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("reservoir: marshal record: %w", err)
	}
	if _, err := w.buf.Write(line); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	w.sinceFlush++
	if w.sinceFlush >= w.flushEveryN {
		if err := w.buf.Flush(); err != nil {
			return err
		}
		w.sinceFlush = 0
		log.Debugf("reservoir: flushed after %d records", w.flushEveryN)
	}
	return nil
}

// Close flushes any buffered records and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// Records opens path and returns every Record in file order. Intended for
// offline replay/training, not for the hot search path.
func Records(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reservoir: open %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("reservoir: unmarshal record: %w", err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reservoir: scan %s: %w", path, err)
	}
	return records, nil
}
