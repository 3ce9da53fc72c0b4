package mate

import (
	"testing"

	"github.com/frankkopp/minigo/position"
	"github.com/stretchr/testify/assert"
)

func solve(t *testing.T, sfen string) bool {
	t.Helper()
	p, err := position.NewSfen(sfen)
	assert.NoError(t, err)
	mates, _ := SolveCheckmateDfs(p, 7)
	return mates
}

func TestMateScenarioPawnSupportedGoldDropMate(t *testing.T) {
	assert.True(t, solve(t, "2k2/5/2P2/5/2K2 b G 1"))
}

func TestMateScenarioGoldSilverMate(t *testing.T) {
	assert.True(t, solve(t, "5/5/2k2/5/2K2 b 2GS 1"))
}

func TestMateScenarioTwoGoldsNoMate(t *testing.T) {
	assert.False(t, solve(t, "5/5/2k2/5/2K2 b 2G 1"))
}

func TestMateScenarioFullHandMate(t *testing.T) {
	assert.True(t, solve(t, "2k2/5/2B2/5/2K2 b GSBRgsr2p 1"))
}

func TestMateScenarioUchifuzumeNoMate(t *testing.T) {
	assert.False(t, solve(t, "2G1k/5/4G/5/2K2 b P 1"))
}

func TestMateScenarioBishopRookMate(t *testing.T) {
	assert.True(t, solve(t, "4k/5/4B/5/2K1R b - 1"))
}

func TestMateSupplementedScenarioBishopGoldMate(t *testing.T) {
	assert.True(t, solve(t, "4k/4p/5/5/K4 b BG 1"))
}

func TestMateSupplementedScenarioRookGoldMate(t *testing.T) {
	assert.True(t, solve(t, "5/4k/3pp/5/K4 b RG 1"))
}

func TestSolveCheckmateDfsLeavesPositionUnchanged(t *testing.T) {
	p, err := position.NewSfen("2k2/5/2P2/5/2K2 b G 1")
	assert.NoError(t, err)
	before := p.Sfen()
	SolveCheckmateDfs(p, 7)
	assert.Equal(t, before, p.Sfen())
}
