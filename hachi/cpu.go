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

// CycleResult tells the host what to do after a cycle.
type CycleResult struct {
	// Redraw is set when the screen changed during the cycle.
	Redraw bool
	// Tone is set while the sound timer is running.
	Tone bool
	// Waiting is set while the machine is blocked on LD VX,K.
	Waiting bool
}

// A handler executes one decoded instruction and tells how the program
// counter moves. It must not modify PC itself.
type handler func(c *Chip8, in Instruction) (PointerAction, error)

var handlers = [opCount]handler{
	OpUnknown: (*Chip8).unknown,
	OpSys:     (*Chip8).sys,
	OpCls:     (*Chip8).cls,
	OpRet:     (*Chip8).ret,
	OpJp:      (*Chip8).jp,
	OpCall:    (*Chip8).call,
	OpSeByte:  (*Chip8).seByte,
	OpSneByte: (*Chip8).sneByte,
	OpSeReg:   (*Chip8).seReg,
	OpLdByte:  (*Chip8).ldByte,
	OpAddByte: (*Chip8).addByte,
	OpLdReg:   (*Chip8).ldReg,
	OpOr:      (*Chip8).or,
	OpAnd:     (*Chip8).and,
	OpXor:     (*Chip8).xor,
	OpAddReg:  (*Chip8).addReg,
	OpSub:     (*Chip8).sub,
	OpShr:     (*Chip8).shr,
	OpSubn:    (*Chip8).subn,
	OpShl:     (*Chip8).shl,
	OpSneReg:  (*Chip8).sneReg,
	OpLdI:     (*Chip8).ldI,
	OpJpV0:    (*Chip8).jpV0,
	OpRnd:     (*Chip8).rnd,
	OpDrw:     (*Chip8).drw,
	OpSkp:     (*Chip8).skp,
	OpSknp:    (*Chip8).sknp,
	OpLdVxDT:  (*Chip8).ldVxDT,
	OpLdKey:   (*Chip8).ldKey,
	OpLdDTVx:  (*Chip8).ldDTVx,
	OpLdSTVx:  (*Chip8).ldSTVx,
	OpAddI:    (*Chip8).addI,
	OpLdFont:  (*Chip8).ldFont,
	OpLdBcd:   (*Chip8).ldBcd,
	OpStore:   (*Chip8).store,
	OpLoad:    (*Chip8).load,
}

// Cycle runs one machine cycle: the timers count down, then either the
// pending LD VX,K is polled or one instruction is executed. It never blocks.
// A non-nil error is fatal for the session.
func (c *Chip8) Cycle() (CycleResult, error) {
	c.Dirty = false
	c.tickTimers()

	if c.wait != nil {
		// timers keep running while we wait
		if k, ok := c.firstPressed(); ok {
			c.V[c.wait.register] = k
			c.wait = nil
		}
		return c.result(), nil
	}

	err := c.Execute(Decode(c.Fetch()))
	return c.result(), err
}

// Fetch returns the instruction word at PC, high byte first.
func (c *Chip8) Fetch() uint16 {
	return uint16(c.read(int(c.PC)))<<8 | uint16(c.read(int(c.PC)+1))
}

// Execute runs a decoded instruction against the machine and applies its
// PointerAction. Timers and the input wait are not touched. On error the
// machine is left as it was before the instruction.
func (c *Chip8) Execute(in Instruction) error {
	action, err := handlers[in.Op](c, in)
	if err != nil {
		return err
	}
	c.PC = action.Apply(c.PC)
	return nil
}

// Exec decodes and executes a single instruction word.
func (c *Chip8) Exec(word uint16) error { return c.Execute(Decode(word)) }

func (c *Chip8) tickTimers() {
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
}

func (c *Chip8) result() CycleResult {
	return CycleResult{
		Redraw:  c.Dirty,
		Tone:    c.Tone(),
		Waiting: c.Waiting(),
	}
}
