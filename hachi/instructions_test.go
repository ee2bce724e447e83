/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

package hachi

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func exec(t *testing.T, c *Chip8, words ...uint16) {
	t.Helper()
	for _, w := range words {
		assert.NoError(t, c.Exec(w))
	}
}

func TestAddByteWraparound(t *testing.T) {
	tests := []struct {
		name  string
		start uint8
		kk    uint8
	}{
		{"zero", 0x00, 0x01},
		{"middle", 0x80, 0x40},
		{"overflow", 0xF0, 0x20},
		{"max", 0xFF, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip(t, false)
			c.V[2] = tt.start
			c.V[0xF] = 0x42

			exec(t, c, 0x7200|uint16(tt.kk))
			assert.Equal(t, tt.start+tt.kk, c.V[2])
			assert.Equal(t, uint8(0x42), c.V[0xF])

			// 256 - kk more increments by one come back to the start
			for range 256 - int(tt.kk) {
				exec(t, c, 0x7201)
			}
			assert.Equal(t, tt.start, c.V[2])

			for x := range uint16(Registers) {
				c.V[0xF] = 0x42
				c.V[x] = tt.start
				exec(t, c, 0x7000|x<<8|uint16(tt.kk))
				assert.Equal(t, tt.start+tt.kk, c.V[x])
				if x != 0xF {
					assert.Equal(t, uint8(0x42), c.V[0xF])
				}
			}
		})
	}
}

func TestAddRegCarry(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy uint8
		want   uint8
		carry  uint8
	}{
		{"no carry", 0x10, 0x20, 0x30, 0},
		{"exactly 255", 0xF0, 0x0F, 0xFF, 0},
		{"carry", 0xFF, 0x01, 0x00, 1},
		{"carry with remainder", 0xC8, 0x64, 0x2C, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip(t, false)
			c.V[1], c.V[2] = tt.vx, tt.vy
			exec(t, c, 0x8124)
			assert.Equal(t, tt.want, c.V[1])
			assert.Equal(t, tt.carry, c.V[0xF])
		})
	}
}

func TestSubNotBorrow(t *testing.T) {
	tests := []struct {
		name   string
		vx, vy uint8
		want   uint8
		flag   uint8
	}{
		{"no borrow", 0x05, 0x03, 0x02, 1},
		{"borrow", 0x03, 0x05, 0xFE, 0},
		{"equal", 0x07, 0x07, 0x00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip(t, false)
			c.V[1], c.V[2] = tt.vx, tt.vy
			exec(t, c, 0x8125)
			assert.Equal(t, tt.want, c.V[1])
			assert.Equal(t, tt.flag, c.V[0xF])
		})
	}
}

func TestSubn(t *testing.T) {
	c := newTestChip(t, false)
	c.V[1], c.V[2] = 0x03, 0x05
	exec(t, c, 0x8127)
	assert.Equal(t, uint8(0x02), c.V[1])
	assert.Equal(t, uint8(1), c.V[0xF])

	c.V[1], c.V[2] = 0x05, 0x03
	exec(t, c, 0x8127)
	assert.Equal(t, uint8(0xFE), c.V[1])
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestFlagWrittenLast(t *testing.T) {
	c := newTestChip(t, false)
	c.V[0xF], c.V[1] = 0xFF, 0x01
	exec(t, c, 0x8F14)
	assert.Equal(t, uint8(1), c.V[0xF])
}

func TestLogicOps(t *testing.T) {
	c := newTestChip(t, false)
	c.V[1], c.V[2] = 0b1100, 0b1010

	exec(t, c, 0x8121)
	assert.Equal(t, uint8(0b1110), c.V[1])

	c.V[1] = 0b1100
	exec(t, c, 0x8122)
	assert.Equal(t, uint8(0b1000), c.V[1])

	c.V[1] = 0b1100
	exec(t, c, 0x8123)
	assert.Equal(t, uint8(0b0110), c.V[1])

	exec(t, c, 0x8120)
	assert.Equal(t, uint8(0b1010), c.V[1])
}

func TestShifts(t *testing.T) {
	c := newTestChip(t, false)
	c.V[1], c.V[2] = 0x81, 0x02

	exec(t, c, 0x8126)
	assert.Equal(t, uint8(0x40), c.V[1])
	assert.Equal(t, uint8(1), c.V[0xF])

	c.V[1] = 0x81
	exec(t, c, 0x812E)
	assert.Equal(t, uint8(0x02), c.V[1])
	assert.Equal(t, uint8(1), c.V[0xF])

	c.V[1] = 0x40
	exec(t, c, 0x812E)
	assert.Equal(t, uint8(0x80), c.V[1])
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestShiftsLegacy(t *testing.T) {
	c := newTestChip(t, true)
	c.V[1], c.V[2] = 0x00, 0x03

	exec(t, c, 0x8126)
	assert.Equal(t, uint8(0x01), c.V[1])
	assert.Equal(t, uint8(1), c.V[0xF])
	assert.Equal(t, uint8(0x03), c.V[2])

	exec(t, c, 0x812E)
	assert.Equal(t, uint8(0x06), c.V[1])
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		skip bool
	}{
		{"SE byte equal", 0x3112, true},
		{"SE byte different", 0x3113, false},
		{"SNE byte equal", 0x4112, false},
		{"SNE byte different", 0x4113, true},
		{"SE reg equal", 0x5120, true},
		{"SE reg different", 0x5130, false},
		{"SNE reg equal", 0x9120, false},
		{"SNE reg different", 0x9130, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip(t, false)
			c.V[1], c.V[2], c.V[3] = 0x12, 0x12, 0x34
			exec(t, c, tt.word)

			want := uint16(0x202)
			if tt.skip {
				want = 0x204
			}
			assert.Equal(t, want, c.PC)
		})
	}
}

func TestKeySkips(t *testing.T) {
	c := newTestChip(t, false)
	c.V[1] = 0x5
	c.Keypad[5] = true

	exec(t, c, 0xE19E)
	assert.Equal(t, uint16(0x204), c.PC)

	exec(t, c, 0xE1A1)
	assert.Equal(t, uint16(0x206), c.PC)

	c.Keypad[5] = false
	exec(t, c, 0xE1A1)
	assert.Equal(t, uint16(0x20A), c.PC)

	// indices past the keypad are never pressed
	c.V[1] = 0x20
	exec(t, c, 0xE19E)
	assert.Equal(t, uint16(0x20C), c.PC)
}

func TestJumps(t *testing.T) {
	c := newTestChip(t, false)
	exec(t, c, 0x1ABC)
	assert.Equal(t, uint16(0xABC), c.PC)

	c.V[0] = 0x10
	exec(t, c, 0xB300)
	assert.Equal(t, uint16(0x310), c.PC)
}

func TestCallRet(t *testing.T) {
	c := newTestChip(t, false, 0x2300)
	c.Memory[0x300] = 0x00
	c.Memory[0x301] = 0xEE

	runCycles(t, c, 1)
	assert.Equal(t, uint16(0x300), c.PC)
	assert.Equal(t, 1, c.SP)
	assert.Equal(t, uint16(0x200), c.Stack[0])

	// the stack keeps the address of the CALL itself, RET resumes at the
	// instruction that follows it
	runCycles(t, c, 1)
	assert.Equal(t, 0, c.SP)
	assert.Equal(t, uint16(0x202), c.PC)
}

func TestNestedCalls(t *testing.T) {
	c := newTestChip(t, false, 0x2300)
	c.Memory[0x300], c.Memory[0x301] = 0x24, 0x00 // CALL 400
	c.Memory[0x302], c.Memory[0x303] = 0x00, 0xEE // RET
	c.Memory[0x400], c.Memory[0x401] = 0x00, 0xEE // RET

	runCycles(t, c, 2)
	assert.Equal(t, 2, c.SP)
	assert.Equal(t, uint16(0x400), c.PC)

	runCycles(t, c, 1)
	assert.Equal(t, uint16(0x302), c.PC)
	runCycles(t, c, 1)
	assert.Equal(t, uint16(0x202), c.PC)
	assert.Equal(t, 0, c.SP)
}

func TestDrawScenario(t *testing.T) {
	c := newTestChip(t, false)
	c.V[0], c.V[1] = 0, 1
	c.I = 0
	c.Memory[0] = 0b11111111

	exec(t, c, 0xD011)
	for x := range Width {
		want := uint8(0)
		if x < 8 {
			want = 1
		}
		assert.Equal(t, want, c.Screen[1][x])
	}
	assert.Equal(t, 8, c.Screen.Lit())
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.True(t, c.Dirty)
}

func TestDrawTwiceRestores(t *testing.T) {
	c := newTestChip(t, false)
	c.V[3], c.V[4] = 10, 5
	c.V[5] = 0x0A
	exec(t, c, 0xF529) // glyph A
	exec(t, c, 0xD345)
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.True(t, c.Screen.Lit() > 0)

	exec(t, c, 0xD345)
	assert.Equal(t, Screen{}, c.Screen)
	assert.Equal(t, uint8(1), c.V[0xF])
}

func TestDrawCollisionAcrossSprite(t *testing.T) {
	c := newTestChip(t, false)
	c.Screen[0][0] = 1
	c.I = 0x300
	c.Memory[0x300] = 0x80
	c.Memory[0x301] = 0x80

	// the collision on the first row must survive the clean second row
	exec(t, c, 0xD002)
	assert.Equal(t, uint8(1), c.V[0xF])
	assert.Equal(t, uint8(0), c.Screen[0][0])
	assert.Equal(t, uint8(1), c.Screen[1][0])
}

func TestDrawWraps(t *testing.T) {
	c := newTestChip(t, false)
	c.V[0], c.V[1] = 62, 31
	c.I = 0x300
	c.Memory[0x300] = 0b11110000
	c.Memory[0x301] = 0b10000000

	exec(t, c, 0xD012)
	assert.Equal(t, uint8(1), c.Screen[31][62])
	assert.Equal(t, uint8(1), c.Screen[31][63])
	assert.Equal(t, uint8(1), c.Screen[31][0])
	assert.Equal(t, uint8(1), c.Screen[31][1])
	assert.Equal(t, uint8(1), c.Screen[0][62])
	assert.Equal(t, 5, c.Screen.Lit())
}

func TestCls(t *testing.T) {
	c := newTestChip(t, false)
	c.Screen[3][4] = 1
	exec(t, c, 0x00E0)
	assert.Equal(t, Screen{}, c.Screen)
	assert.True(t, c.Dirty)
}

func TestRnd(t *testing.T) {
	c := newTestChip(t, false)
	c.random = &sequence{values: []uint8{0xAB, 0x5C}}

	exec(t, c, 0xC10F)
	assert.Equal(t, uint8(0x0B), c.V[1])
	exec(t, c, 0xC1F0)
	assert.Equal(t, uint8(0x50), c.V[1])
}

func TestNewRandomSeeded(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for range 16 {
		assert.Equal(t, a.Byte(), b.Byte())
	}
}

func TestTimerInstructions(t *testing.T) {
	c := newTestChip(t, false)
	c.V[1] = 0x30
	exec(t, c, 0xF115, 0xF118)
	assert.Equal(t, uint8(0x30), c.DT)
	assert.Equal(t, uint8(0x30), c.ST)

	c.DT = 0x12
	exec(t, c, 0xF207)
	assert.Equal(t, uint8(0x12), c.V[2])
}

func TestIndexInstructions(t *testing.T) {
	c := newTestChip(t, false)
	exec(t, c, 0xAFFE)
	assert.Equal(t, uint16(0xFFE), c.I)

	c.V[3] = 0x04
	exec(t, c, 0xF31E)
	assert.Equal(t, uint16(0x1002), c.I)
	assert.Equal(t, uint8(0), c.V[0xF])

	c.V[3] = 0xF
	exec(t, c, 0xF329)
	assert.Equal(t, uint16(0xF*FontGlyphSize), c.I)
	assert.Equal(t, Font[0xF*FontGlyphSize], c.Memory[c.I])
}

func TestBcd(t *testing.T) {
	tests := []struct {
		value uint8
		want  [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{7, [3]byte{0, 0, 7}},
		{42, [3]byte{0, 4, 2}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		c := newTestChip(t, false)
		c.I = 0x300
		c.V[6] = tt.value
		exec(t, c, 0xF633)
		assert.Equal(t, tt.want, [3]byte(c.Memory[0x300:0x303]))
	}
}

func TestStoreLoad(t *testing.T) {
	c := newTestChip(t, false)
	c.I = 0x300
	for i := range 4 {
		c.V[i] = uint8(0x10 + i)
	}

	exec(t, c, 0xF355)
	assert.Equal(t, [5]byte{0x10, 0x11, 0x12, 0x13, 0x00}, [5]byte(c.Memory[0x300:0x305]))
	assert.Equal(t, uint16(0x300), c.I)

	c.V = [Registers]uint8{}
	exec(t, c, 0xF265)
	assert.Equal(t, uint8(0x10), c.V[0])
	assert.Equal(t, uint8(0x12), c.V[2])
	assert.Equal(t, uint8(0), c.V[3])
	assert.Equal(t, uint16(0x300), c.I)
}

func TestStoreLoadLegacy(t *testing.T) {
	c := newTestChip(t, true)
	c.I = 0x300
	c.V[0], c.V[1] = 0xAA, 0xBB

	exec(t, c, 0xF155)
	assert.Equal(t, uint16(0x302), c.I)
	assert.Equal(t, [2]byte{0xAA, 0xBB}, [2]byte(c.Memory[0x300:0x302]))

	c.I = 0x300
	c.V[0], c.V[1] = 0, 0
	exec(t, c, 0xF165)
	assert.Equal(t, uint16(0x302), c.I)
	assert.Equal(t, uint8(0xAA), c.V[0])
	assert.Equal(t, uint8(0xBB), c.V[1])
}

func TestStorePastMemory(t *testing.T) {
	c := newTestChip(t, false)
	c.I = MemorySize - 1
	c.V[0], c.V[1] = 0x11, 0x22

	exec(t, c, 0xF155)
	assert.Equal(t, uint8(0x11), c.Memory[MemorySize-1])

	c.V[1] = 0x77
	exec(t, c, 0xF165)
	assert.Equal(t, uint8(0x11), c.V[0])
	assert.Equal(t, uint8(0), c.V[1])
}

func TestIndexNeverWrapsIntoFont(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		c := newTestChip(t, legacy)

		// ADD I,V0 saturates instead of wrapping to 0
		exec(t, c, 0xAFFF, 0x60FF)
		for range 300 {
			exec(t, c, 0xF01E)
		}
		assert.Equal(t, uint16(0xFFFF), c.I)

		c.I = 0xFFFE
		c.V[0], c.V[1] = 0xAB, 0xCD
		exec(t, c, 0xF155, 0xF033)
		assert.Equal(t, Font, [len(Font)]byte(c.Memory[FontBase:FontBase+len(Font)]))

		c.I = 0xFFFE
		exec(t, c, 0xF165)
		assert.Equal(t, uint8(0), c.V[0])
		assert.Equal(t, uint8(0), c.V[1])

		c.I = 0xFFFE
		exec(t, c, 0xD005)
		assert.Equal(t, 0, c.Screen.Lit())
		assert.Equal(t, uint8(0), c.V[0xF])
	}
}

func TestLegacyStoreStopsAtIndexLimit(t *testing.T) {
	c := newTestChip(t, true)
	c.I = 0xFFFE
	exec(t, c, 0xF355)
	assert.Equal(t, uint16(0xFFFF), c.I)
	assert.Equal(t, Font, [len(Font)]byte(c.Memory[FontBase:FontBase+len(Font)]))
}
