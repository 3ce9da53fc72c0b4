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

// Package position implements the 5x5 Minishogi board representation:
// piece placement, hand counts, incremental Zobrist hashing, check
// bitboards, do/undo, repetition detection and legal move generation.
package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frankkopp/minigo/assert"
	"github.com/frankkopp/minigo/logging"
	"github.com/frankkopp/minigo/movelist"
	. "github.com/frankkopp/minigo/types"
)

var log = logging.GetLog("position")

// StartposSfen is the standard 5x5 Minishogi starting position.
const StartposSfen = "rbsgk/4p/5/P4/KGSBR b - 1"

// Position represents a single Minishogi game state plus its full move and
// hash history, indexed by ply so do/undo and repetition detection are O(1)
// and allocation-free.
type Position struct {
	sideToMove Color
	board      [SquareNB]Piece
	hand       [2][5]uint8
	pawnFlags  [2]uint8
	pieceBb    [PieceLength]Bitboard
	playerBb   [2]Bitboard

	ply uint16

	kif       [MaxPly + 1]Move
	hashBoard [MaxPly + 1]Key
	hashHand  [MaxPly + 1]Key

	adjacentCheckBb   [MaxPly + 1]Bitboard
	longCheckBb       [MaxPly + 1]Bitboard
	sequentCheckCount [MaxPly + 1][2]uint16
}

// New creates a Position at the standard Minishogi starting position.
func New() *Position {
	p := &Position{}
	if err := p.SetupSfen(StartposSfen); err != nil {
		panic(err)
	}
	return p
}

// NewSfen creates a Position from an arbitrary SFEN string, optionally
// followed by " moves m1 m2 ..." to replay from the given base position.
func NewSfen(sfen string) (*Position, error) {
	p := &Position{}
	if err := p.SetupSfen(sfen); err != nil {
		return nil, err
	}
	return p, nil
}

var sfenPieceChars = map[byte]Piece{
	'K': WKing, 'G': WGold, 'S': WSilver, 'B': WBishop, 'R': WRook, 'P': WPawn,
	'k': BKing, 'g': BGold, 's': BSilver, 'b': BBishop, 'r': BRook, 'p': BPawn,
}

var handCharToPieceType = map[byte]PieceType{
	'G': Gold, 'S': Silver, 'B': Bishop, 'R': Rook, 'P': Pawn,
}

func pieceToSfenChar(p Piece) string {
	pt := p.GetPieceType()
	c := pt.GetRaw().Char()
	if p.GetColor() == Black {
		c = strings.ToLower(c)
	}
	if pt.IsPromoted() {
		return "+" + c
	}
	return c
}

// SetupSfen (re)initializes p from sfen, discarding any prior history.
func (p *Position) SetupSfen(sfen string) error {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return fmt.Errorf("position: invalid sfen %q", sfen)
	}

	for i := range p.board {
		p.board[i] = NoPiece
	}
	for c := 0; c < 2; c++ {
		for s := 0; s < 5; s++ {
			p.hand[c][s] = 0
		}
		p.pawnFlags[c] = 0
	}

	sq := 0
	promote := false
	for _, r := range fields[0] {
		switch {
		case r == '+':
			promote = true
			continue
		case r == '/':
			continue
		case r >= '0' && r <= '9':
			sq += int(r - '0')
			continue
		}
		piece, ok := sfenPieceChars[byte(r)]
		if !ok {
			return fmt.Errorf("position: invalid sfen piece %q in %q", r, sfen)
		}
		if sq >= SquareNB {
			return fmt.Errorf("position: sfen board overruns squares: %q", sfen)
		}
		if promote {
			piece = piece.GetPromoted()
		}
		p.board[sq] = piece
		if piece == WPawn {
			p.pawnFlags[White] |= 1 << uint(sq%FileNB)
		} else if piece == BPawn {
			p.pawnFlags[Black] |= 1 << uint(sq%FileNB)
		}
		promote = false
		sq++
	}

	if fields[1] == "b" {
		p.sideToMove = White
	} else {
		p.sideToMove = Black
	}

	count := uint8(1)
	for _, r := range fields[2] {
		switch {
		case r == '-':
			continue
		case r >= '0' && r <= '9':
			count = uint8(r - '0')
			continue
		}
		piece, ok := sfenPieceChars[byte(r)]
		if !ok {
			return fmt.Errorf("position: invalid sfen hand piece %q in %q", r, sfen)
		}
		p.hand[piece.GetColor()][piece.GetPieceType().HandIndex()] = count
		count = 1
	}

	p.setBitboards()
	p.ply = 0
	p.setCheckBb()
	p.hashBoard[0], p.hashHand[0] = p.calculateHash()

	moves := movesSuffix(fields)
	for _, mv := range moves {
		p.DoMove(p.moveFromSfen(mv))
	}
	return nil
}

func movesSuffix(fields []string) []string {
	for i, f := range fields {
		if f == "moves" {
			return fields[i+1:]
		}
	}
	return nil
}

func (p *Position) moveFromSfen(s string) Move {
	if len(s) >= 2 && s[1] == '*' {
		pt := handCharToPieceType[s[0]]
		piece := MakePiece(p.sideToMove, pt)
		to := SquareFromSfen(s[2:4])
		return DropMove(piece, to)
	}
	from := SquareFromSfen(s[0:2])
	to := SquareFromSfen(s[2:4])
	promotion := len(s) == 5
	piece := p.board[from]
	capture := p.board[to]
	return BoardMove(piece, from, to, promotion, capture)
}

// Sfen renders the current position (board, side, hand) without history.
func (p *Position) Sfen() string {
	var sb strings.Builder
	empty := 0
	for i := 0; i < SquareNB; i++ {
		if p.board[i] == NoPiece {
			empty++
		} else {
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pieceToSfenChar(p.board[i]))
		}
		if i%FileNB == FileNB-1 {
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			if i != SquareNB-1 {
				sb.WriteByte('/')
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.Str())
	sb.WriteByte(' ')

	any := false
	for _, pt := range HandPieceTypeAll {
		for _, c := range [2]Color{White, Black} {
			n := p.hand[c][pt.HandIndex()]
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(int(n)))
			}
			sb.WriteString(pieceToSfenChar(MakePiece(c, pt)))
			any = true
		}
	}
	if !any {
		sb.WriteByte('-')
	}
	sb.WriteString(" 1")
	return sb.String()
}

// SfenWithHistory renders the starting position this game began from
// followed by every move played as a "moves m1 m2 ..." suffix.
func (p *Position) SfenWithHistory() string {
	tmp := *p
	for tmp.ply > 0 {
		tmp.UndoMove()
	}
	s := tmp.Sfen()
	if p.ply == 0 {
		return s
	}
	var sb strings.Builder
	sb.WriteString(s)
	sb.WriteString(" moves")
	for i := uint16(0); i < p.ply; i++ {
		sb.WriteByte(' ')
		sb.WriteString(p.kif[i].Sfen())
	}
	return sb.String()
}

func (p *Position) setBitboards() {
	for i := range p.pieceBb {
		p.pieceBb[i] = EmptyBb
	}
	p.playerBb[White] = EmptyBb
	p.playerBb[Black] = EmptyBb
	for i := Square(0); i < SquareNB; i++ {
		pc := p.board[i]
		if pc != NoPiece {
			p.pieceBb[pc] = p.pieceBb[pc].PushSquare(i)
			p.playerBb[pc.GetColor()] = p.playerBb[pc.GetColor()].PushSquare(i)
		}
	}
}

// setCheckBb recomputes adjacentCheckBb/longCheckBb for the current ply and
// side to move.
func (p *Position) setCheckBb() {
	ply := p.ply
	p.adjacentCheckBb[ply] = EmptyBb
	p.longCheckBb[ply] = EmptyBb

	kingSq := p.pieceBb[MakePiece(p.sideToMove, King)].Lsb()
	if kingSq == NoSquare {
		return
	}
	opp := p.sideToMove.Flip()

	for _, pt := range PieceTypeAll {
		check := AdjacentAttack(kingSq, pt.GetPiece(p.sideToMove)) & p.pieceBb[pt.GetPiece(opp)]
		if check != EmptyBb {
			p.adjacentCheckBb[ply] |= check
		}
	}

	occ := p.playerBb[White] | p.playerBb[Black]
	bishopCheck := BishopAttack(kingSq, occ)
	p.longCheckBb[ply] |= bishopCheck & p.pieceBb[MakePiece(opp, Bishop)]
	p.longCheckBb[ply] |= bishopCheck & p.pieceBb[MakePiece(opp, BishopProm)]
	rookCheck := RookAttack(kingSq, occ)
	p.longCheckBb[ply] |= rookCheck & p.pieceBb[MakePiece(opp, Rook)]
	p.longCheckBb[ply] |= rookCheck & p.pieceBb[MakePiece(opp, RookProm)]
}

func (p *Position) calculateHash() (Key, Key) {
	var hash Key
	for i := Square(0); i < SquareNB; i++ {
		if p.board[i] != NoPiece {
			hash ^= BoardTable[i][p.board[i]]
		}
	}
	if p.sideToMove == Black {
		hash |= 1
	}
	var handHash Key
	for c := 0; c < 2; c++ {
		for s := 0; s < 5; s++ {
			handHash ^= HandTable[c][s][p.hand[c][s]]
		}
	}
	return hash, handHash
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Board returns the piece on sq, or NoPiece.
func (p *Position) Board(sq Square) Piece { return p.board[sq] }

// Hand returns the held count of pt for color c.
func (p *Position) Hand(c Color, pt PieceType) uint8 { return p.hand[c][pt.HandIndex()] }

// Ply returns the current ply counter.
func (p *Position) Ply() uint16 { return p.ply }

// Kif returns the move played at ply i (0-indexed, i < Ply()).
func (p *Position) Kif(i uint16) Move { return p.kif[i] }

// Hash returns the combined (board, hand) Zobrist key pair for the current ply.
func (p *Position) Hash() (Key, Key) { return p.hashBoard[p.ply], p.hashHand[p.ply] }

// KingSquare returns the square of color c's king, or NoSquare if absent.
func (p *Position) KingSquare(c Color) Square {
	return p.pieceBb[MakePiece(c, King)].Lsb()
}

// AdjacentCheckBb returns the set of opponent pieces giving adjacent (short
// range) check at the current ply.
func (p *Position) AdjacentCheckBb() Bitboard { return p.adjacentCheckBb[p.ply] }

// LongCheckBb returns the set of opponent sliding pieces giving check at the
// current ply.
func (p *Position) LongCheckBb() Bitboard { return p.longCheckBb[p.ply] }

// CheckBb is the union of AdjacentCheckBb and LongCheckBb.
func (p *Position) CheckBb() Bitboard {
	return p.adjacentCheckBb[p.ply] | p.longCheckBb[p.ply]
}

// InCheck reports whether the side to move's king is presently attacked.
func (p *Position) InCheck() bool { return p.CheckBb() != EmptyBb }

// SequentCheckCount returns how many consecutive plies color c has given
// check ending at the current ply.
func (p *Position) SequentCheckCount(c Color) uint16 {
	return p.sequentCheckCount[p.ply][c]
}

// Clone returns a full snapshot of p, including all history arrays.
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// Flatten returns a fresh Position carrying only the current board/hand
// state, with ply reset to 0 and hash[0] set to p's current hash, matching
// the reference implementation's copy-without-history mode. Only the tests
// call it; the mate search works on p directly through its own do/undo.
func (p *Position) Flatten() *Position {
	cp := &Position{
		sideToMove: p.sideToMove,
		board:      p.board,
		hand:       p.hand,
		pawnFlags:  p.pawnFlags,
		pieceBb:    p.pieceBb,
		playerBb:   p.playerBb,
	}
	cp.kif[0] = NullMove
	cp.hashBoard[0], cp.hashHand[0] = p.hashBoard[p.ply], p.hashHand[p.ply]
	cp.adjacentCheckBb[0] = p.adjacentCheckBb[p.ply]
	cp.longCheckBb[0] = p.longCheckBb[p.ply]
	cp.sequentCheckCount[0] = p.sequentCheckCount[p.ply]
	return cp
}

// DoMove applies m, maintaining board, hand, bitboards, hashes, check
// bitboards and sequent-check counters incrementally.
func (p *Position) DoMove(m Move) {
	if assert.DEBUG {
		assert.Assert(m.CapturePiece.GetPieceType() != King, "DoMove: captured piece is a king")
	}

	ply := p.ply
	p.hashBoard[ply+1] = p.hashBoard[ply]
	p.hashHand[ply+1] = p.hashHand[ply]
	stm := p.sideToMove

	if m.IsDrop {
		slot := m.Piece.GetPieceType().HandIndex()

		p.board[m.To] = m.Piece
		p.hand[stm][slot]--
		p.pieceBb[m.Piece] = p.pieceBb[m.Piece].PushSquare(m.To)
		p.playerBb[stm] = p.playerBb[stm].PushSquare(m.To)

		if m.Piece.GetPieceType() == Pawn {
			p.pawnFlags[stm] |= 1 << uint(int(m.To)%FileNB)
		}

		newCount := p.hand[stm][slot]
		p.hashBoard[ply+1] ^= BoardTable[m.To][m.Piece]
		p.hashHand[ply+1] ^= HandTable[stm][slot][newCount+1]
		p.hashHand[ply+1] ^= HandTable[stm][slot][newCount]
	} else {
		if m.CapturePiece != NoPiece {
			rawCap := m.CapturePiece.GetRaw()
			slot := rawCap.GetPieceType().HandIndex()

			p.pieceBb[m.CapturePiece] = p.pieceBb[m.CapturePiece].PopSquare(m.To)
			p.playerBb[stm.Flip()] = p.playerBb[stm.Flip()].PopSquare(m.To)
			if m.CapturePiece.GetPieceType() == Pawn {
				p.pawnFlags[stm.Flip()] &^= 1 << uint(int(m.To)%FileNB)
			}

			p.hand[stm][slot]++
			newCount := p.hand[stm][slot]
			p.hashBoard[ply+1] ^= BoardTable[m.To][m.CapturePiece]
			p.hashHand[ply+1] ^= HandTable[stm][slot][newCount-1]
			p.hashHand[ply+1] ^= HandTable[stm][slot][newCount]
		}

		destPiece := m.Piece
		if m.Promotion {
			destPiece = m.Piece.GetPromoted()
			if m.Piece.GetPieceType() == Pawn {
				p.pawnFlags[stm] &^= 1 << uint(int(m.From)%FileNB)
			}
		}

		p.board[m.To] = destPiece
		p.board[m.From] = NoPiece

		p.pieceBb[destPiece] = p.pieceBb[destPiece].PushSquare(m.To)
		p.playerBb[stm] = p.playerBb[stm].PushSquare(m.To)
		p.pieceBb[m.Piece] = p.pieceBb[m.Piece].PopSquare(m.From)
		p.playerBb[stm] = p.playerBb[stm].PopSquare(m.From)

		p.hashBoard[ply+1] ^= BoardTable[m.From][m.Piece]
		p.hashBoard[ply+1] ^= BoardTable[m.To][destPiece]
	}

	p.hashBoard[ply+1] ^= 1

	p.kif[ply] = m
	p.ply++
	p.sideToMove = stm.Flip()

	p.setCheckBb()

	newPly := p.ply
	mover := stm
	newStm := p.sideToMove
	if p.adjacentCheckBb[newPly] != EmptyBb || p.longCheckBb[newPly] != EmptyBb {
		p.sequentCheckCount[newPly][mover] = p.sequentCheckCount[newPly-1][mover] + 1
	} else {
		p.sequentCheckCount[newPly][mover] = 0
	}
	p.sequentCheckCount[newPly][newStm] = p.sequentCheckCount[newPly-1][newStm]
}

// UndoMove reverses the last DoMove. Derived per-ply tables (check
// bitboards, sequent-check counts, hashes) are left in place - their
// validity is indexed by ply and the ply counter alone governs visibility.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.ply > 0, "UndoMove: ply is already 0")
	}

	p.ply--
	m := p.kif[p.ply]
	p.sideToMove = p.sideToMove.Flip()
	stm := p.sideToMove

	if m.IsDrop {
		slot := m.Piece.GetPieceType().HandIndex()

		p.board[m.To] = NoPiece
		p.hand[stm][slot]++
		p.pieceBb[m.Piece] = p.pieceBb[m.Piece].PopSquare(m.To)
		p.playerBb[stm] = p.playerBb[stm].PopSquare(m.To)

		if m.Piece.GetPieceType() == Pawn {
			p.pawnFlags[stm] &^= 1 << uint(int(m.To)%FileNB)
		}
		return
	}

	destPiece := p.board[m.To]
	p.pieceBb[destPiece] = p.pieceBb[destPiece].PopSquare(m.To)
	p.playerBb[stm] = p.playerBb[stm].PopSquare(m.To)
	p.pieceBb[m.Piece] = p.pieceBb[m.Piece].PushSquare(m.From)
	p.playerBb[stm] = p.playerBb[stm].PushSquare(m.From)

	if m.Piece.GetPieceType() == Pawn && m.Promotion {
		p.pawnFlags[stm] |= 1 << uint(int(m.To)%FileNB)
	}

	p.board[m.To] = m.CapturePiece
	p.board[m.From] = m.Piece

	if m.CapturePiece != NoPiece {
		rawCap := m.CapturePiece.GetRaw()
		slot := rawCap.GetPieceType().HandIndex()

		p.hand[stm][slot]--
		p.pieceBb[m.CapturePiece] = p.pieceBb[m.CapturePiece].PushSquare(m.To)
		p.playerBb[stm.Flip()] = p.playerBb[stm.Flip()].PushSquare(m.To)
		if m.CapturePiece.GetPieceType() == Pawn {
			p.pawnFlags[stm.Flip()] |= 1 << uint(int(m.To)%FileNB)
		}
	}
}

// IsRepetition reports (repetition, checkRepetition). repetition is true once
// the current (board,hand) hash has occurred three times before at the same
// side to move (four occurrences total). checkRepetition additionally flags
// that one side has been giving check on every one of its moves across the
// whole repeated window - see the mate search for how that is resolved.
func (p *Position) IsRepetition() (bool, bool) {
	if p.ply == 0 {
		return false, false
	}

	count := 0
	checkRepetition := false

	for ply := int(p.ply) - 4; ply >= 0; ply -= 2 {
		if p.hashBoard[ply] == p.hashBoard[p.ply] && p.hashHand[ply] == p.hashHand[p.ply] {
			count++
			if count == 1 {
				span := uint16(int(p.ply) + 1 - ply)
				if p.sequentCheckCount[p.ply][p.sideToMove] >= span/2 ||
					p.sequentCheckCount[p.ply][p.sideToMove.Flip()] >= span/2 {
					checkRepetition = true
				}
			}
		}
		if count == 3 {
			return true, checkRepetition
		}
	}
	return false, false
}

// GetRepetition returns how many prior plies (same side to move) share the
// current hash.
func (p *Position) GetRepetition() int {
	count := 0
	for ply := int(p.ply) - 4; ply >= 0; ply -= 2 {
		if p.hashBoard[ply] == p.hashBoard[p.ply] && p.hashHand[ply] == p.hashHand[p.ply] {
			count++
		}
	}
	return count
}

func inPromotionZone(c Color, from, to Square) bool {
	if c == White {
		return to.Row() == 0 || from.Row() == 0
	}
	return to.Row() == RankNB-1 || from.Row() == RankNB-1
}

// GenerateMoves returns every move matching the requested categories:
// isBoard enables piece relocations, isHand enables hand drops. When
// allowIllegal is false the result is filtered down to legal moves (no
// self-check). checkDropOnly, meaningful only with isHand, restricts drops
// to squares that would check the opponent's king.
func (p *Position) GenerateMoves(isBoard, isHand, allowIllegal, checkDropOnly bool) *movelist.MoveList {
	var buf []Move
	stm := p.sideToMove
	opp := stm.Flip()
	ply := p.ply
	doubleChecked := (p.adjacentCheckBb[ply] | p.longCheckBb[ply]).PopCount() > 1

	if isBoard {
		bb := p.playerBb[stm]
		for bb != EmptyBb {
			var from Square
			from, bb = bb.PopLsb()
			pc := p.board[from]

			if !allowIllegal && doubleChecked && pc.GetPieceType() != King {
				continue
			}

			stepTos := AdjacentAttack(from, pc) &^ p.playerBb[stm]
			for stepTos != EmptyBb {
				var to Square
				to, stepTos = stepTos.PopLsb()
				if !allowIllegal && p.adjacentCheckBb[ply] != EmptyBb && pc.GetPieceType() != King && !p.adjacentCheckBb[ply].Has(to) {
					continue
				}
				buf = appendMoveWithPromotion(buf, stm, pc, from, to, p.board[to])
			}

			var slideTos Bitboard
			switch pc.GetPieceType() {
			case Bishop, BishopProm:
				allOcc := p.playerBb[White] | p.playerBb[Black]
				slideTos = BishopAttack(from, allOcc) &^ p.playerBb[stm]
			case Rook, RookProm:
				allOcc := p.playerBb[White] | p.playerBb[Black]
				slideTos = RookAttack(from, allOcc) &^ p.playerBb[stm]
			}
			for slideTos != EmptyBb {
				var to Square
				to, slideTos = slideTos.PopLsb()
				if !allowIllegal && p.adjacentCheckBb[ply] != EmptyBb && pc.GetPieceType() != King && !p.adjacentCheckBb[ply].Has(to) {
					continue
				}
				buf = appendMoveWithPromotion(buf, stm, pc, from, to, p.board[to])
			}
		}
	}

	if isHand && (allowIllegal || p.adjacentCheckBb[ply] == EmptyBb) {
		emptySquares := FullBb &^ (p.playerBb[White] | p.playerBb[Black])
		for _, pt := range HandPieceTypeAll {
			if p.hand[stm][pt.HandIndex()] == 0 {
				continue
			}
			squares := emptySquares
			if checkDropOnly {
				kingSq := p.pieceBb[MakePiece(opp, King)].Lsb()
				if kingSq != NoSquare {
					checkSquares := AdjacentAttack(kingSq, pt.GetPiece(opp))
					occWithoutKing := (p.playerBb[White] | p.playerBb[Black]).PopSquare(kingSq)
					if pt == Bishop {
						checkSquares |= BishopAttack(kingSq, occWithoutKing)
					}
					if pt == Rook {
						checkSquares |= RookAttack(kingSq, occWithoutKing)
					}
					squares &= checkSquares
				}
			}
			for squares != EmptyBb {
				var to Square
				to, squares = squares.PopLsb()
				if pt == Pawn && p.pawnFlags[stm]&(1<<uint(to.Col())) != 0 {
					continue
				}
				if pt == Pawn && ((stm == White && to.Row() == 0) || (stm == Black && to.Row() == RankNB-1)) {
					continue
				}
				buf = append(buf, DropMove(MakePiece(stm, pt), to))
			}
		}
	}

	if !allowIllegal {
		buf = p.filterLegal(buf)
	}

	ml := &movelist.MoveList{}
	for _, m := range buf {
		ml.PushBack(m)
	}
	return ml
}

func appendMoveWithPromotion(buf []Move, stm Color, pc Piece, from, to Square, capture Piece) []Move {
	deadEnd := (pc == WPawn && to.Row() == 0) || (pc == BPawn && to.Row() == RankNB-1)
	if !deadEnd {
		buf = append(buf, BoardMove(pc, from, to, false, capture))
	}
	if pc.IsRaw() && pc.IsPromotable() && inPromotionZone(stm, from, to) {
		buf = append(buf, BoardMove(pc, from, to, true, capture))
	}
	return buf
}

// filterLegal removes self-check moves via swap-remove, matching the
// generator's own in-place compaction style.
func (p *Position) filterLegal(moves []Move) []Move {
	stm := p.sideToMove
	opp := stm.Flip()
	kingSq := p.pieceBb[MakePiece(stm, King)].Lsb()
	occAll := p.playerBb[White] | p.playerBb[Black]

	isLegal := func(m Move) bool {
		if m.IsDrop {
			occ := occAll.PushSquare(m.To)
			if attacksKing(occ, kingSq, opp, p) {
				return false
			}
			return true
		}

		if m.Piece.GetPieceType() == King {
			occ := occAll.PushSquare(m.To).PopSquare(m.From)
			if attacksKing(occ, m.To, opp, p) {
				return false
			}
			for _, pt := range PieceTypeAll {
				if AdjacentAttack(m.To, pt.GetPiece(stm))&p.pieceBb[pt.GetPiece(opp)] != EmptyBb {
					return false
				}
			}
			return true
		}

		acCount := p.adjacentCheckBb[p.ply].PopCount()
		if acCount > 1 {
			return false
		}
		if acCount == 1 && !p.adjacentCheckBb[p.ply].Has(m.To) {
			return false
		}

		occ := occAll.PushSquare(m.To).PopSquare(m.From)
		bishopCheck := BishopAttack(kingSq, occ) &^ SquareBb(m.To)
		if bishopCheck&p.pieceBb[MakePiece(opp, Bishop)] != EmptyBb || bishopCheck&p.pieceBb[MakePiece(opp, BishopProm)] != EmptyBb {
			return false
		}
		rookCheck := RookAttack(kingSq, occ) &^ SquareBb(m.To)
		if rookCheck&p.pieceBb[MakePiece(opp, Rook)] != EmptyBb || rookCheck&p.pieceBb[MakePiece(opp, RookProm)] != EmptyBb {
			return false
		}
		return true
	}

	i := 0
	for i < len(moves) {
		if !isLegal(moves[i]) {
			moves[i] = moves[len(moves)-1]
			moves = moves[:len(moves)-1]
			continue
		}
		i++
	}
	return moves
}

func attacksKing(occ Bitboard, sq Square, attacker Color, p *Position) bool {
	bishopCheck := BishopAttack(sq, occ)
	if bishopCheck&p.pieceBb[MakePiece(attacker, Bishop)] != EmptyBb || bishopCheck&p.pieceBb[MakePiece(attacker, BishopProm)] != EmptyBb {
		return true
	}
	rookCheck := RookAttack(sq, occ)
	if rookCheck&p.pieceBb[MakePiece(attacker, Rook)] != EmptyBb || rookCheck&p.pieceBb[MakePiece(attacker, RookProm)] != EmptyBb {
		return true
	}
	return false
}

// String renders a compact 5x5 ASCII board for debugging/logging.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.Sfen())
	sb.WriteByte('\n')
	for row := 0; row < RankNB; row++ {
		for col := 0; col < FileNB; col++ {
			sq := MakeSquare(row, col)
			pc := p.board[sq]
			if pc == NoPiece {
				sb.WriteString(" . ")
			} else {
				sb.WriteString(pc.String())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func init() {
	log.Debug("position package initialized")
}
