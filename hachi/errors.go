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
	"errors"
	"fmt"
)

// ErrInvalidProgram is matched by every fault that aborts a session because
// the loaded image is malformed. Use errors.Is to test for it.
var ErrInvalidProgram = errors.New("invalid program")

// A StackOverflowErr is returned when CALL is executed with all stack slots
// in use.
type StackOverflowErr struct {
	PC    uint16
	Depth int
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow at %04X (depth %d)", e.PC, e.Depth)
}

// Is reports ErrInvalidProgram as a match.
func (e *StackOverflowErr) Is(target error) bool { return target == ErrInvalidProgram }

// A StackUnderflowErr is returned when RET is executed with an empty stack.
type StackUnderflowErr struct {
	PC uint16
}

func (e *StackUnderflowErr) Error() string {
	return fmt.Sprintf("stack underflow at %04X", e.PC)
}

// Is reports ErrInvalidProgram as a match.
func (e *StackUnderflowErr) Is(target error) bool { return target == ErrInvalidProgram }
