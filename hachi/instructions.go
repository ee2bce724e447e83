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

import "github.com/retroenv/retrogolib/log"

// function pointers for the legacy mode switch

type ldMemoryMap map[bool]func(c *Chip8, x uint8)

var ldMemory = ldMemoryMap{
	false: func(c *Chip8, x uint8) {
		for i := uint8(0); i <= x; i++ {
			c.V[i] = c.read(int(c.I) + int(i))
		}
	},
	true: func(c *Chip8, x uint8) {
		for i := uint8(0); i <= x; i++ {
			c.V[i] = c.read(int(c.I))
			c.addIndex(1)
		}
	},
}

type ldSetMemoryMap map[bool]func(c *Chip8, x uint8)

var ldSetMemory = ldSetMemoryMap{
	false: func(c *Chip8, x uint8) {
		for i := uint8(0); i <= x; i++ {
			c.write(int(c.I)+int(i), c.V[i])
		}
	},
	true: func(c *Chip8, x uint8) {
		for i := uint8(0); i <= x; i++ {
			c.write(int(c.I), c.V[i])
			c.addIndex(1)
		}
	},
}

type shiftMap map[bool]func(c *Chip8, x, y uint8)

var shl = shiftMap{
	false: func(c *Chip8, x, y uint8) {
		msb := c.V[x] >> 7
		c.V[x] <<= 1
		c.V[0xF] = msb
	},
	true: func(c *Chip8, x, y uint8) {
		msb := c.V[y] >> 7
		c.V[x] = c.V[y] << 1
		c.V[0xF] = msb
	},
}

var shr = shiftMap{
	false: func(c *Chip8, x, y uint8) {
		lsb := c.V[x] & 0x01
		c.V[x] >>= 1
		c.V[0xF] = lsb
	},
	true: func(c *Chip8, x, y uint8) {
		lsb := c.V[y] & 0x01
		c.V[x] = c.V[y] >> 1
		c.V[0xF] = lsb
	},
}

// addIndex advances I by n. I saturates at 0xFFFF instead of wrapping back
// to the font area.
func (c *Chip8) addIndex(n int) {
	c.I = uint16(min(int(c.I)+n, 0xFFFF))
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------

func (c *Chip8) unknown(in Instruction) (PointerAction, error) {
	c.logger.Debug("Skipping unknown opcode",
		log.Hex("opcode", in.Word),
		log.Hex("address", c.PC))
	return Next(), nil
}

// SYS NNN
// Calls a machine code routine on the original hardware; ignored here.
func (c *Chip8) sys(Instruction) (PointerAction, error) { return Next(), nil }

// CLS
func (c *Chip8) cls(Instruction) (PointerAction, error) {
	c.Screen = Screen{}
	c.Dirty = true
	return Next(), nil
}

// RET
// The stack holds the address of the CALL, so resume right after it.
func (c *Chip8) ret(Instruction) (PointerAction, error) {
	if c.SP == 0 {
		return Next(), &StackUnderflowErr{PC: c.PC}
	}
	c.SP--
	return Jump(c.Stack[c.SP] + instructionSize), nil
}

// JP NNN
func (c *Chip8) jp(in Instruction) (PointerAction, error) {
	return Jump(in.NNN), nil
}

// CALL NNN
func (c *Chip8) call(in Instruction) (PointerAction, error) {
	if c.SP >= len(c.Stack) {
		return Next(), &StackOverflowErr{PC: c.PC, Depth: c.SP}
	}
	c.Stack[c.SP] = c.PC
	c.SP++
	return Jump(in.NNN), nil
}

// SE VX,NN
func (c *Chip8) seByte(in Instruction) (PointerAction, error) {
	return SkipIf(c.V[in.X] == in.KK), nil
}

// SNE VX,NN
func (c *Chip8) sneByte(in Instruction) (PointerAction, error) {
	return SkipIf(c.V[in.X] != in.KK), nil
}

// SE VX,VY
func (c *Chip8) seReg(in Instruction) (PointerAction, error) {
	return SkipIf(c.V[in.X] == c.V[in.Y]), nil
}

// SNE VX,VY
func (c *Chip8) sneReg(in Instruction) (PointerAction, error) {
	return SkipIf(c.V[in.X] != c.V[in.Y]), nil
}

// LD VX,NN
func (c *Chip8) ldByte(in Instruction) (PointerAction, error) {
	c.V[in.X] = in.KK
	return Next(), nil
}

// ADD VX,NN
// Wraps around, VF is not touched.
func (c *Chip8) addByte(in Instruction) (PointerAction, error) {
	c.V[in.X] += in.KK
	return Next(), nil
}

// LD VX,VY
func (c *Chip8) ldReg(in Instruction) (PointerAction, error) {
	c.V[in.X] = c.V[in.Y]
	return Next(), nil
}

// OR VX,VY
func (c *Chip8) or(in Instruction) (PointerAction, error) {
	c.V[in.X] |= c.V[in.Y]
	return Next(), nil
}

// AND VX,VY
func (c *Chip8) and(in Instruction) (PointerAction, error) {
	c.V[in.X] &= c.V[in.Y]
	return Next(), nil
}

// XOR VX,VY
func (c *Chip8) xor(in Instruction) (PointerAction, error) {
	c.V[in.X] ^= c.V[in.Y]
	return Next(), nil
}

// ADD VX,VY
// VF is the carry. It is written last so it wins when X is F.
func (c *Chip8) addReg(in Instruction) (PointerAction, error) {
	sum := uint16(c.V[in.X]) + uint16(c.V[in.Y])
	c.V[in.X] = uint8(sum)
	c.V[0xF] = boolByte(sum > 0xFF)
	return Next(), nil
}

// SUB VX,VY
// VF is set when there is no borrow.
func (c *Chip8) sub(in Instruction) (PointerAction, error) {
	vx, vy := c.V[in.X], c.V[in.Y]
	c.V[in.X] = vx - vy
	c.V[0xF] = boolByte(vx > vy)
	return Next(), nil
}

// SUBN VX,VY
func (c *Chip8) subn(in Instruction) (PointerAction, error) {
	vx, vy := c.V[in.X], c.V[in.Y]
	c.V[in.X] = vy - vx
	c.V[0xF] = boolByte(vy > vx)
	return Next(), nil
}

// SHR VX,VY (VX >>= 1, or VX = VY >> 1 in legacy mode)
func (c *Chip8) shr(in Instruction) (PointerAction, error) {
	c.pShr(c, in.X, in.Y)
	return Next(), nil
}

// SHL VX,VY (VX <<= 1, or VX = VY << 1 in legacy mode)
func (c *Chip8) shl(in Instruction) (PointerAction, error) {
	c.pShl(c, in.X, in.Y)
	return Next(), nil
}

// LD I,NNN
func (c *Chip8) ldI(in Instruction) (PointerAction, error) {
	c.I = in.NNN
	return Next(), nil
}

// JP V0,NNN
func (c *Chip8) jpV0(in Instruction) (PointerAction, error) {
	return Jump(in.NNN + uint16(c.V[0])), nil
}

// RND VX,NN (VX = rand() & NN)
func (c *Chip8) rnd(in Instruction) (PointerAction, error) {
	c.V[in.X] = c.random.Byte() & in.KK
	return Next(), nil
}

// DRW VX,VY,N
// Sprite rows are 8 pixels wide and XORed onto the screen. Both axes wrap.
// VF is set if any lit pixel was turned off.
func (c *Chip8) drw(in Instruction) (PointerAction, error) {
	x0 := int(c.V[in.X])
	y0 := int(c.V[in.Y])

	var collision bool
	for row := 0; row < int(in.N); row++ {
		sprite := c.read(int(c.I) + row)
		y := (y0 + row) % Height

		for bit := 0; bit < 8; bit++ {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			x := (x0 + bit) % Width
			if c.Screen[y][x] == 1 {
				collision = true
			}
			c.Screen[y][x] ^= 1
		}
	}

	c.V[0xF] = boolByte(collision)
	c.Dirty = true
	return Next(), nil
}

// SKP VX
func (c *Chip8) skp(in Instruction) (PointerAction, error) {
	return SkipIf(c.pressed(c.V[in.X])), nil
}

// SKNP VX
func (c *Chip8) sknp(in Instruction) (PointerAction, error) {
	return SkipIf(!c.pressed(c.V[in.X])), nil
}

// LD VX,DT
func (c *Chip8) ldVxDT(in Instruction) (PointerAction, error) {
	c.V[in.X] = c.DT
	return Next(), nil
}

// LD VX,K
// Only arms the wait; Cycle polls the keypad from the next cycle on.
func (c *Chip8) ldKey(in Instruction) (PointerAction, error) {
	c.wait = &waitInputInfo{register: in.X}
	return Next(), nil
}

// LD DT,VX
func (c *Chip8) ldDTVx(in Instruction) (PointerAction, error) {
	c.DT = c.V[in.X]
	return Next(), nil
}

// LD ST,VX
func (c *Chip8) ldSTVx(in Instruction) (PointerAction, error) {
	c.ST = c.V[in.X]
	return Next(), nil
}

// ADD I,VX
func (c *Chip8) addI(in Instruction) (PointerAction, error) {
	c.addIndex(int(c.V[in.X]))
	return Next(), nil
}

// LD F,VX
func (c *Chip8) ldFont(in Instruction) (PointerAction, error) {
	c.I = FontBase + uint16(c.V[in.X])*FontGlyphSize
	return Next(), nil
}

// LD B,VX
func (c *Chip8) ldBcd(in Instruction) (PointerAction, error) {
	for i, d := range bcd(c.V[in.X]) {
		c.write(int(c.I)+i, d)
	}
	return Next(), nil
}

// LD [I],VX
func (c *Chip8) store(in Instruction) (PointerAction, error) {
	c.pLdSetMemory(c, in.X)
	return Next(), nil
}

// LD VX,[I]
func (c *Chip8) load(in Instruction) (PointerAction, error) {
	c.pLdMemory(c, in.X)
	return Next(), nil
}
