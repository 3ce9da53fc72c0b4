package codec

import (
	"testing"

	"github.com/frankkopp/minigo/position"
	"github.com/stretchr/testify/assert"
	. "github.com/frankkopp/minigo/types"
)

func TestFillAlphaZeroPlanesShapeAndDeterminism(t *testing.T) {
	p := position.New()
	out := make([]float64, AlphaZeroChannels*BoardSize)
	FillAlphaZeroPlanes(p, out)

	out2 := make([]float64, AlphaZeroChannels*BoardSize)
	FillAlphaZeroPlanes(p, out2)
	assert.Equal(t, out, out2)
}

func TestFillAlphaZeroPlanesPanicsOnWrongLength(t *testing.T) {
	p := position.New()
	assert.Panics(t, func() {
		FillAlphaZeroPlanes(p, make([]float64, 3))
	})
}

func TestFillAlphaZeroPlanesSideToMoveConstantPlane(t *testing.T) {
	p := position.New()
	out := make([]float64, AlphaZeroChannels*BoardSize)
	FillAlphaZeroPlanes(p, out)

	sideChannel := AlphaZeroChannels - 2
	base := sideChannel * BoardSize
	for sq := 0; sq < BoardSize; sq++ {
		assert.Equal(t, float64(p.SideToMove()), out[base+sq])
	}
	assert.Equal(t, float64(White), out[base])
}

func TestFillAlphaZeroPlanesReflectsCurrentPieces(t *testing.T) {
	p, err := position.NewSfen("4k/5/5/5/4K b - 1")
	assert.NoError(t, err)
	out := make([]float64, AlphaZeroChannels*BoardSize)
	FillAlphaZeroPlanes(p, out)

	kingPt := King
	kingChannel := -1
	for i, pt := range PieceTypeAll {
		if pt == kingPt {
			kingChannel = i
			break
		}
	}
	assert.GreaterOrEqual(t, kingChannel, 0)
	base := kingChannel * BoardSize
	assert.Equal(t, 1.0, out[base+int(p.KingSquare(White))])
}
