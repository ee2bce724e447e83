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

// ActionKind tells how the program counter moves after an instruction.
type ActionKind uint8

const (
	// ActionNext advances to the following instruction.
	ActionNext ActionKind = iota
	// ActionSkip skips the following instruction.
	ActionSkip
	// ActionJump continues at PointerAction.Target.
	ActionJump
)

// A PointerAction is the control flow outcome of one instruction. Handlers
// return it instead of touching the program counter; Cycle applies it.
type PointerAction struct {
	Kind   ActionKind
	Target uint16
}

// Next returns the action that advances to the following instruction.
func Next() PointerAction { return PointerAction{Kind: ActionNext} }

// Skip returns the action that skips the following instruction.
func Skip() PointerAction { return PointerAction{Kind: ActionSkip} }

// Jump returns the action that continues execution at addr.
func Jump(addr uint16) PointerAction {
	return PointerAction{Kind: ActionJump, Target: addr}
}

// SkipIf returns Skip when cond holds and Next otherwise.
func SkipIf(cond bool) PointerAction {
	if cond {
		return Skip()
	}
	return Next()
}

// Apply returns the program counter that follows pc.
func (a PointerAction) Apply(pc uint16) uint16 {
	switch a.Kind {
	case ActionSkip:
		return pc + 2*instructionSize
	case ActionJump:
		return a.Target
	}
	return pc + instructionSize
}

func (a PointerAction) String() string {
	switch a.Kind {
	case ActionSkip:
		return "Skip"
	case ActionJump:
		return fmt.Sprintf("Jump(%03X)", a.Target)
	}
	return "Next"
}
