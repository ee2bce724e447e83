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
	"fmt"
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var descriptions = [opCount]string{
	OpUnknown: "Unknown / Raw Data",
	OpSys:     "0NNN: Calls RCA 1802 program at address NNN.",
	OpCls:     "00E0: Clears the screen.",
	OpRet:     "00EE: Returns from a subroutine.",
	OpJp:      "1NNN: Jumps to address NNN.",
	OpCall:    "2NNN: Calls subroutine at NNN.",
	OpSeByte:  "3XNN: Skips the next instruction if VX equals NN.",
	OpSneByte: "4XNN: Skips the next instruction if VX doesn't equal NN.",
	OpSeReg:   "5XY0: Skips the next instruction if VX equals VY.",
	OpLdByte:  "6XNN: Sets VX to NN.",
	OpAddByte: "7XNN: Adds NN to VX.",
	OpLdReg:   "8XY0: Sets VX to the value of VY.",
	OpOr:      "8XY1: Sets VX to VX | VY (bit-wise OR).",
	OpAnd:     "8XY2: Sets VX to VX & VY (bit-wise AND).",
	OpXor:     "8XY3: Sets VX to VX ^ VY (bit-wise XOR).",
	OpAddReg:  "8XY4: VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	OpSub:     "8XY5: VX -= VY. VF = 0 when there's a borrow, 1 when there isn't.",
	OpShr:     "8XY6: VX >>= 1. VF = least significant bit prior to the shift.",
	OpSubn:    "8XY7: VX = VY - VX. VF = 0 when there's a borrow, 1 when there isn't.",
	OpShl:     "8XYE: VX <<= 1. VF = most significant bit prior to the shift.",
	OpSneReg:  "9XY0: Skips the next instruction if VX doesn't equal VY.",
	OpLdI:     "ANNN: Sets I to the address NNN.",
	OpJpV0:    "BNNN: Jumps to the address NNN plus V0.",
	OpRnd:     "CXNN: Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	OpDrw:     "DXYN: Draws N rows of sprite pointed by I at VX,VY.",
	OpSkp:     "EX9E: Skips the next instruction if the key stored in VX is pressed.",
	OpSknp:    "EXA1: Skips the next instruction if the key stored in VX isn't pressed.",
	OpLdVxDT:  "FX07: Sets VX to the value of the delay timer.",
	OpLdKey:   "FX0A: A key press is awaited, and then key number is stored in VX.",
	OpLdDTVx:  "FX15: Sets the delay timer to VX.",
	OpLdSTVx:  "FX18: Sets the sound timer to VX.",
	OpAddI:    "FX1E: Adds VX to I.",
	OpLdFont:  "FX29: Sets I to the location of the sprite for the character in VX.",
	OpLdBcd:   "FX33: Store BCD representation of VX in memory at I, I+1, and I+2.",
	OpStore:   "FX55: Stores V0 to VX in memory starting at address I.",
	OpLoad:    "FX65: Fills V0 to VX with values from memory starting at address I.",
}

// Description returns a one line explanation of what the operation does.
func (o Op) Description() string {
	if o >= opCount {
		return descriptions[OpUnknown]
	}
	return descriptions[o]
}

// -----------------------------------------------------------------------------

// A Line is one disassembled instruction, or 1-2 bytes of raw data.
type Line struct {
	Address     uint16
	Data        []byte
	Instruction Instruction
	// Text is the pseudo-asm representation, for example "DRW V1,V2,5".
	Text string
	// Skip is set for conditional instructions that may skip the next one.
	Skip bool
}

// Opcode returns the data as a 16-bit integer.
func (l Line) Opcode() (res uint16) {
	res = uint16(l.Data[0])
	if len(l.Data) == 2 {
		res <<= 8
		res |= uint16(l.Data[1])
	}
	return
}

// Size returns the size of the line in bytes.
func (l Line) Size() int { return len(l.Data) }

// IsData reports whether the line holds unrecognized raw data.
func (l Line) IsData() bool { return l.Instruction.Op == OpUnknown }

// Description returns a detailed description of what the instruction does.
func (l Line) Description() string { return l.Instruction.Op.Description() }

// ASCII returns the ASCII representation of the raw data for this line, or an
// empty string if the data is not printable ascii.
func (l Line) ASCII() (res string) {
	if isPrintableASCII(l.Data) {
		res = string(l.Data)
	}
	return
}

func (l Line) String() string { return l.Text }

// -----------------------------------------------------------------------------

// lookupOpcode finds the most specific entry of the CHIP-8 opcode table that
// matches w.
func lookupOpcode(w uint16) *chip8.Instruction {
	var (
		found *chip8.Instruction
		best  = -1
	)
	for _, op := range chip8.Opcodes[int(w>>12)] {
		if op.Info.Mask&w != op.Info.Value || op.Instruction == nil {
			continue
		}
		if n := bits.OnesCount16(op.Info.Mask); n > best {
			found, best = op.Instruction, n
		}
	}
	return found
}

func disassembleWord(addr uint16, data []byte) Line {
	w := uint16(data[0])<<8 | uint16(data[1])
	in := Decode(w)
	l := Line{Address: addr, Data: data, Instruction: in}

	if in.Op == OpUnknown {
		l.Text = fmt.Sprintf("DB % 02X", data)
		return l
	}

	l.Text = in.String()
	if op := lookupOpcode(w); op != nil {
		l.Skip = chip8.SkipInstructions.Contains(op.Name)
	}
	return l
}

// Disassemble produces a linear listing of a program image loaded at base.
// Words that are not valid instructions are listed as raw data, and so is a
// trailing odd byte. Whether a line may skip the next one comes from the
// CHIP-8 opcode table.
func Disassemble(b []byte, base uint16) []Line {
	res := make([]Line, 0, (len(b)+1)/2)

	for i := 0; i < len(b); i += instructionSize {
		addr := base + uint16(i)
		if i+1 >= len(b) {
			data := b[i : i+1]
			res = append(res, Line{
				Address:     addr,
				Data:        data,
				Instruction: Instruction{Word: uint16(data[0]), Op: OpUnknown},
				Text:        fmt.Sprintf("DB %02X", data[0]),
			})
			break
		}
		res = append(res, disassembleWord(addr, b[i:i+2]))
	}

	return res
}
