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
	"math/rand/v2"
	"time"
	"unicode"
)

// KeyLayout maps the 4x4 block of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var KeyLayout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyForRune returns the keypad index bound to r in KeyLayout. Letters are
// matched case-insensitively.
func KeyForRune(r rune) (uint8, bool) {
	k, ok := KeyLayout[unicode.ToLower(r)]
	return k, ok
}

// pressed reports whether key k is held. Indices past the keypad are never
// pressed.
func (c *Chip8) pressed(k uint8) bool {
	if int(k) >= Keys {
		return false
	}
	return c.Keypad[k]
}

// firstPressed returns the lowest held key.
func (c *Chip8) firstPressed() (uint8, bool) {
	for k, down := range c.Keypad {
		if down {
			return uint8(k), true
		}
	}
	return 0, false
}

// -----------------------------------------------------------------------------

// A RandomSource produces the bytes consumed by RND VX,NN. Any uniform byte
// generator will do; tests inject fixed sequences.
type RandomSource interface {
	Byte() uint8
}

type pcgSource struct{ r *rand.Rand }

func (p pcgSource) Byte() uint8 { return uint8(p.r.Uint32()) }

// NewRandom returns a PCG backed RandomSource. The same non-zero seed always
// yields the same sequence; seed 0 picks a time based seed.
func NewRandom(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return pcgSource{rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}
