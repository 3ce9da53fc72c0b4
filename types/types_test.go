package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFlip(t *testing.T) {
	assert.Equal(t, Black, White.Flip())
	assert.Equal(t, White, Black.Flip())
	assert.Equal(t, "b", White.Str())
	assert.Equal(t, "w", Black.Str())
}

func TestPieceTypePromotion(t *testing.T) {
	assert.Equal(t, SilverProm, Silver.GetPromoted())
	assert.Equal(t, BishopProm, Bishop.GetPromoted())
	assert.Equal(t, RookProm, Rook.GetPromoted())
	assert.Equal(t, PawnProm, Pawn.GetPromoted())
	assert.True(t, Silver.IsPromotable())
	assert.False(t, King.IsPromotable())
	assert.False(t, Gold.IsPromotable())
}

func TestPieceRoundtrip(t *testing.T) {
	p := MakePiece(Black, Rook)
	assert.Equal(t, Black, p.GetColor())
	assert.Equal(t, Rook, p.GetPieceType())
	assert.True(t, p.IsRaw())
	pp := p.GetPromoted()
	assert.True(t, pp.IsPromoted())
	assert.Equal(t, p, pp.GetRaw())
	assert.Equal(t, NoColor, NoPiece.GetColor())
}

func TestSquareSfenRoundtrip(t *testing.T) {
	for sq := Square(0); sq < SquareNB; sq++ {
		s := sq.SfenStr()
		got := SquareFromSfen(s)
		assert.Equal(t, sq, got, "square %d -> %q -> %d", sq, s, got)
	}
}

func TestSquareMirror(t *testing.T) {
	assert.Equal(t, Square(24), Square(0).Mirror())
	assert.Equal(t, Square(12), Square(12).Mirror())
}

func TestBitboardPopLsb(t *testing.T) {
	var bb Bitboard
	bb = bb.PushSquare(3).PushSquare(7).PushSquare(20)
	assert.Equal(t, 3, bb.PopCount())
	sq, rest := bb.PopLsb()
	assert.Equal(t, Square(3), sq)
	assert.Equal(t, 2, rest.PopCount())
}

func TestRelationTable(t *testing.T) {
	Init()
	d, dist := Relation(20, 15)
	assert.Equal(t, N, d)
	assert.Equal(t, 1, dist)

	d, dist = Relation(20, 4)
	assert.Equal(t, NE, d)
	assert.Equal(t, 4, dist)

	d, dist = Relation(4, 20)
	assert.Equal(t, SW, d)
	assert.Equal(t, 4, dist)

	d, dist = Relation(0, 24)
	assert.Equal(t, SE, d)
	assert.Equal(t, 4, dist)
}

func TestRookBishopAttackBlocking(t *testing.T) {
	Init()
	// Rook on square 12 (center), no blockers: attacks all of row and column.
	occ := SquareBb(12)
	attack := RookAttack(12, occ)
	assert.Equal(t, 8, attack.PopCount())

	// Place a blocker one square north (square 7) - attack should stop there.
	occ = occ.PushSquare(7)
	attack = RookAttack(12, occ)
	assert.True(t, attack.Has(7))
	assert.False(t, attack.Has(2))
	assert.Equal(t, 7, attack.PopCount())
}

func TestZobristBoardTableLowBitClear(t *testing.T) {
	Init()
	for sq := Square(0); sq < SquareNB; sq++ {
		for p := Piece(1); p < PieceLength; p++ {
			assert.EqualValues(t, 0, BoardTable[sq][p]&1, "square %d piece %d", sq, p)
		}
	}
}

func TestMoveSfenAndNull(t *testing.T) {
	m := BoardMove(WPawn, MakeSquare(3, 1), MakeSquare(2, 1), false, NoPiece)
	assert.Equal(t, "4d4c", m.Sfen())

	d := DropMove(MakeGoldDrop(White), MakeSquare(2, 2))
	assert.Equal(t, "G*3c", d.Sfen())

	assert.Equal(t, "resign", NullMove.Sfen())
	assert.True(t, NullMove.IsNullMove())
}

// MakeGoldDrop is a small test helper matching the hand-piece construction
// pattern used by move generation.
func MakeGoldDrop(c Color) Piece {
	return MakePiece(c, Gold)
}
