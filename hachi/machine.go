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

// Package hachi implements a CHIP-8 interpreter, a disassembler for CHIP-8
// programs and the host loop that connects the interpreter to a driver.
package hachi

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// Machine layout.
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	// MaxProgramSize is the number of bytes that fit between ProgramStart and
	// the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	StackSize = 16
	Registers = 16
	Keys      = 16

	Width  = 64
	Height = 32

	// FontBase is the address of the first hex glyph. Each glyph is
	// FontGlyphSize bytes tall.
	FontBase      = 0x000
	FontGlyphSize = 5

	instructionSize = 2
)

// Font holds the 16 hex digit glyphs, 4 pixels wide and 5 rows tall.
var Font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// -----------------------------------------------------------------------------

// Settings holds the configuration parameters for a Chip8 instance.
type Settings struct {
	// Enables old behaviour for SHL VX,VY , SHR VX,VY , LD [I],VX and LD VX,[I]
	LegacyMode bool
	// Random feeds RND VX,NN. A time seeded generator is used when nil.
	Random RandomSource
	// Logger receives load and decode diagnostics. A default logger is used
	// when nil.
	Logger *log.Logger
}

// DefaultSettings mimick the original CHIP-8 implementation.
var DefaultSettings = Settings{}

// -----------------------------------------------------------------------------

// Screen is the monochrome framebuffer, indexed [y][x]. Every element is
// either 0 or 1.
type Screen [Height][Width]uint8

// Lit returns the number of pixels that are set.
func (s *Screen) Lit() (n int) {
	for y := range s {
		for x := range s[y] {
			n += int(s[y][x])
		}
	}
	return
}

// -----------------------------------------------------------------------------

// Chip8 is an implementation of a CHIP-8 emulator. It holds the state of the
// virtual machine. A Chip8 must only be driven from one goroutine.
type Chip8 struct {
	// The memory where programs are loaded and executed.
	// Programs start at 0x200 because the original interpreter occupied the
	// first 512 bytes. The font lives at FontBase.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as a carry flag.
	V [Registers]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// The call stack, which holds return addresses.
	Stack [StackSize]uint16
	// The stack pointer. Index of the next free slot in Stack.
	SP int
	// Program counter. Holds the address of the next instruction.
	PC uint16
	// Timers. Both count down by one every cycle while non-zero.
	// DT is intended for timing events in games, ST makes a beeping sound as
	// long as its value is non-zero.
	DT uint8
	ST uint8
	// Keypad is the hex keyboard with 16 keys, written by the host between
	// cycles. 8, 4, 6 and 2 are typically used for directional input.
	Keypad [Keys]bool
	// Screen buffer, 64x32.
	Screen Screen
	// Dirty is set when an instruction modified Screen during the last
	// cycle.
	Dirty bool

	wait   *waitInputInfo
	random RandomSource
	logger *log.Logger

	pLdMemory, pLdSetMemory func(c *Chip8, x uint8)
	pShr, pShl              func(c *Chip8, x, y uint8)
}

// struct used to hold some info when waiting for input
type waitInputInfo struct {
	register uint8
}

// New initializes a new instance of Chip8 with the given settings. If settings
// is nil, DefaultSettings will be used.
func New(s *Settings) *Chip8 {
	if s == nil {
		s = &DefaultSettings
	}

	c := &Chip8{
		PC:           ProgramStart,
		random:       s.Random,
		logger:       s.Logger,
		pLdMemory:    ldMemory[s.LegacyMode],
		pLdSetMemory: ldSetMemory[s.LegacyMode],
		pShr:         shr[s.LegacyMode],
		pShl:         shl[s.LegacyMode],
	}
	if c.random == nil {
		c.random = NewRandom(0)
	}
	if c.logger == nil {
		c.logger = log.NewWithConfig(log.DefaultConfig())
	}

	copy(c.Memory[FontBase:], Font[:])
	return c
}

// String returns formatted information about the instance of the emulator.
func (c *Chip8) String() string {
	return fmt.Sprintf("Chip8{Registers: [% 02X] I: %04X, "+
		"Stack: % 04X, SP: %v, PC: %04X, DT: %02X, ST: %02X, "+
		"Keypad: %016b, Waiting: %v}",
		c.V, c.I, c.Stack[:c.SP], c.SP, c.PC, c.DT, c.ST,
		c.keyMask(), c.Waiting())
}

// Waiting reports whether the machine is blocked on LD VX,K.
func (c *Chip8) Waiting() bool { return c.wait != nil }

// WaitRegister returns the register that receives the next key press while
// Waiting is true.
func (c *Chip8) WaitRegister() (uint8, bool) {
	if c.wait == nil {
		return 0, false
	}
	return c.wait.register, true
}

// Tone reports whether the sound timer is running.
func (c *Chip8) Tone() bool { return c.ST > 0 }

// -----------------------------------------------------------------------------

// LoadBytes copies a program into memory starting at ProgramStart. Bytes that
// do not fit are dropped. Returns the number of bytes loaded.
func (c *Chip8) LoadBytes(program []byte) int {
	n := copy(c.Memory[ProgramStart:], program)
	if n < len(program) {
		c.logger.Warn("Program truncated",
			log.Int("size", len(program)),
			log.Int("loaded", n))
	}
	c.logger.Debug("Loaded program", log.Int("size", n))
	return n
}

// LoadReader reads a program from r, keeping at most MaxProgramSize bytes.
func (c *Chip8) LoadReader(r io.Reader) (int, error) {
	program, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading program: %w", err)
	}
	return c.LoadBytes(program), nil
}

// Load opens a CHIP-8 binary file and loads it into memory.
// Returns the size, in bytes, of the loaded program.
func (c *Chip8) Load(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()

	n, err := c.LoadReader(f)
	if err != nil {
		return 0, err
	}
	c.logger.Info("Loaded program", log.String("file", path), log.Int("size", n))
	return n, nil
}

// Program returns the n bytes of memory at ProgramStart.
func (c *Chip8) Program(n int) []byte {
	if n > MaxProgramSize {
		n = MaxProgramSize
	}
	return c.Memory[ProgramStart : ProgramStart+n]
}

// -----------------------------------------------------------------------------

// read returns the byte at addr, or 0 past the end of memory.
func (c *Chip8) read(addr int) byte {
	if addr < 0 || addr >= MemorySize {
		return 0
	}
	return c.Memory[addr]
}

// write stores b at addr. Writes past the end of memory are dropped.
func (c *Chip8) write(addr int, b byte) {
	if addr < 0 || addr >= MemorySize {
		return
	}
	c.Memory[addr] = b
}

func (c *Chip8) keyMask() (mask uint16) {
	for i, down := range c.Keypad {
		if down {
			mask |= 1 << i
		}
	}
	return
}
