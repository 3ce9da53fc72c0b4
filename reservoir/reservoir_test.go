package reservoir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterAppendAndRecordsRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.jsonl")

	w, err := NewWriter(path)
	assert.NoError(t, err)

	r1 := Record{
		Ply:     4,
		SfenKif: []string{"rbsgk/4p/5/P4/KGSBR b - 1", "rbsgk/4p/5/P4/KGSBR w - 1"},
		MctsResult: []MctsResult{
			{SumN: 100, Q: 0.6, Moves: []MctsResultMove{{MoveSfen: "5e4d", N: 80}}},
		},
		LearningTargetPlys: []int{0, 2},
		Winner:             0,
		Timestamp:          1700000000,
	}
	r2 := r1
	r2.Ply = 6
	r2.Winner = 1

	assert.NoError(t, w.Append(r1))
	assert.NoError(t, w.Append(r2))
	assert.NoError(t, w.Close())

	records, err := Records(path)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, r1, records[0])
	assert.Equal(t, r2, records[1])
}

func TestWriterFlushesAtConfiguredCadence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.jsonl")

	w, err := NewWriter(path)
	assert.NoError(t, err)
	w.flushEveryN = 2

	assert.NoError(t, w.Append(Record{Ply: 1}))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Zero(t, info.Size())

	assert.NoError(t, w.Append(Record{Ply: 2}))
	info, err = os.Stat(path)
	assert.NoError(t, err)
	assert.NotZero(t, info.Size())

	assert.NoError(t, w.Close())
}

func TestRecordsOnMissingFileErrors(t *testing.T) {
	_, err := Records("/nonexistent/path/does-not-exist.jsonl")
	assert.Error(t, err)
}
