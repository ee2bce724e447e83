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

import "fmt"

// Op identifies one of the CHIP-8 operations after decoding.
type Op uint8

// Operations, named after the opcode pattern they decode from.
const (
	OpUnknown Op = iota
	OpSys        // 0nnn
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1nnn
	OpCall       // 2nnn
	OpSeByte     // 3xkk
	OpSneByte    // 4xkk
	OpSeReg      // 5xy0
	OpLdByte     // 6xkk
	OpAddByte    // 7xkk
	OpLdReg      // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpSubn       // 8xy7
	OpShl        // 8xyE
	OpSneReg     // 9xy0
	OpLdI        // Annn
	OpJpV0       // Bnnn
	OpRnd        // Cxkk
	OpDrw        // Dxyn
	OpSkp        // Ex9E
	OpSknp       // ExA1
	OpLdVxDT     // Fx07
	OpLdKey      // Fx0A
	OpLdDTVx     // Fx15
	OpLdSTVx     // Fx18
	OpAddI       // Fx1E
	OpLdFont     // Fx29
	OpLdBcd      // Fx33
	OpStore      // Fx55
	OpLoad       // Fx65

	opCount
)

var opMnemonics = [opCount]string{
	OpUnknown: "???",
	OpSys:     "SYS",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeByte:  "SE",
	OpSneByte: "SNE",
	OpSeReg:   "SE",
	OpLdByte:  "LD",
	OpAddByte: "ADD",
	OpLdReg:   "LD",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE",
	OpLdI:     "LD",
	OpJpV0:    "JP",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD",
	OpLdKey:   "LD",
	OpLdDTVx:  "LD",
	OpLdSTVx:  "LD",
	OpAddI:    "ADD",
	OpLdFont:  "LD",
	OpLdBcd:   "LD",
	OpStore:   "LD",
	OpLoad:    "LD",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if o >= opCount {
		return opMnemonics[OpUnknown]
	}
	return opMnemonics[o]
}

// -----------------------------------------------------------------------------

// An Instruction is a decoded 16-bit instruction word. All operand forms are
// always filled in; which ones are meaningful depends on Op.
type Instruction struct {
	Word uint16
	Op   Op
	X, Y uint8  // second and third nibble
	N    uint8  // fourth nibble
	KK   uint8  // low byte
	NNN  uint16 // low 12 bits
}

// Decode splits an instruction word into its operands and identifies the
// operation. Unrecognized patterns decode to OpUnknown.
func Decode(word uint16) Instruction {
	in := Instruction{
		Word: word,
		X:    uint8(word >> 8 & 0x0F),
		Y:    uint8(word >> 4 & 0x0F),
		N:    uint8(word & 0x0F),
		KK:   uint8(word),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch in.NNN {
		case 0x0E0:
			in.Op = OpCls
		case 0x0EE:
			in.Op = OpRet
		default:
			in.Op = OpSys
		}
	case 0x1:
		in.Op = OpJp
	case 0x2:
		in.Op = OpCall
	case 0x3:
		in.Op = OpSeByte
	case 0x4:
		in.Op = OpSneByte
	case 0x5:
		if in.N == 0 {
			in.Op = OpSeReg
		}
	case 0x6:
		in.Op = OpLdByte
	case 0x7:
		in.Op = OpAddByte
	case 0x8:
		switch in.N {
		case 0x0:
			in.Op = OpLdReg
		case 0x1:
			in.Op = OpOr
		case 0x2:
			in.Op = OpAnd
		case 0x3:
			in.Op = OpXor
		case 0x4:
			in.Op = OpAddReg
		case 0x5:
			in.Op = OpSub
		case 0x6:
			in.Op = OpShr
		case 0x7:
			in.Op = OpSubn
		case 0xE:
			in.Op = OpShl
		}
	case 0x9:
		if in.N == 0 {
			in.Op = OpSneReg
		}
	case 0xA:
		in.Op = OpLdI
	case 0xB:
		in.Op = OpJpV0
	case 0xC:
		in.Op = OpRnd
	case 0xD:
		in.Op = OpDrw
	case 0xE:
		switch in.KK {
		case 0x9E:
			in.Op = OpSkp
		case 0xA1:
			in.Op = OpSknp
		}
	case 0xF:
		switch in.KK {
		case 0x07:
			in.Op = OpLdVxDT
		case 0x0A:
			in.Op = OpLdKey
		case 0x15:
			in.Op = OpLdDTVx
		case 0x18:
			in.Op = OpLdSTVx
		case 0x1E:
			in.Op = OpAddI
		case 0x29:
			in.Op = OpLdFont
		case 0x33:
			in.Op = OpLdBcd
		case 0x55:
			in.Op = OpStore
		case 0x65:
			in.Op = OpLoad
		}
	}

	return in
}

// Operands returns the operand field of the pseudo-asm representation.
func (in Instruction) Operands() string {
	switch in.Op {
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("%03X", in.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("V%1X,%02X", in.X, in.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub,
		OpSubn, OpShr, OpShl:
		return fmt.Sprintf("V%1X,V%1X", in.X, in.Y)
	case OpLdI:
		return fmt.Sprintf("I,%03X", in.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0,%03X", in.NNN)
	case OpDrw:
		return fmt.Sprintf("V%1X,V%1X,%1X", in.X, in.Y, in.N)
	case OpSkp, OpSknp:
		return fmt.Sprintf("V%1X", in.X)
	case OpLdVxDT:
		return fmt.Sprintf("V%1X,DT", in.X)
	case OpLdKey:
		return fmt.Sprintf("V%1X,K", in.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT,V%1X", in.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST,V%1X", in.X)
	case OpAddI:
		return fmt.Sprintf("I,V%1X", in.X)
	case OpLdFont:
		return fmt.Sprintf("F,V%1X", in.X)
	case OpLdBcd:
		return fmt.Sprintf("B,V%1X", in.X)
	case OpStore:
		return fmt.Sprintf("[I],V%1X", in.X)
	case OpLoad:
		return fmt.Sprintf("V%1X,[I]", in.X)
	}
	return ""
}

// String returns a pseudo-asm representation of the instruction, for example
// "DRW V1,V2,5". Unknown words are shown as raw data.
func (in Instruction) String() string {
	if in.Op == OpUnknown {
		return fmt.Sprintf("DW %04X", in.Word)
	}
	if ops := in.Operands(); ops != "" {
		return in.Op.String() + " " + ops
	}
	return in.Op.String()
}
