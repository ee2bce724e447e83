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

// Package termloop implements a driver for termloop.
//
// The driver owns the termloop game loop and runs one emulator cycle per
// drawn frame. Printable keys follow hachi.KeyLayout; the arrow keys and Enter
// are bound to 8, 4, 6, 2 and 5. Ctrl+C quits.
//
// Special key mappings can be modified through SetData("key_map", myMap),
// where myMap is a map[termloop.Key]uint8 with termloop keys as keys and
// keypad indices as values. SetData("logger", *log.Logger) sets the logger.
package termloop

import (
	"context"
	"fmt"
	"reflect"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/Mureke/rChip8/hachi"
	"github.com/retroenv/retrogolib/log"
)

// terminals only report key presses, so keys are released automatically
// after this long
const keyHold = 100 * time.Millisecond

// A TermloopDriver is a terminal-based driver that uses the termloop library.
// It shows the current emulator state in real time and the screen.
type TermloopDriver struct {
	g                 *tl.Game
	logger            *log.Logger
	memory            *tl.Text
	registers         *tl.Text
	pointersAndTimers *tl.Text
	devices           *tl.Text
	status            *tl.Text
	stack             []*tl.Text
	syscalls          [10]*tl.Text
	screen            [hachi.Height][hachi.Width]*tl.Rectangle
	lastScreen        hachi.Screen
	keyMap            map[tl.Key]uint8
	pressed           map[uint8]time.Time
	beeping           bool
}

func (d *TermloopDriver) printSyscall(s string) {
	for i := len(d.syscalls) - 1; i > 0; i-- {
		d.syscalls[i].SetText(d.syscalls[i-1].Text())
	}
	d.syscalls[0].SetText(s)
}

// just a wrapper entity to handle input
type inputHandler struct{ d *TermloopDriver }

func (i *inputHandler) Draw(s *tl.Screen) {}

func (i *inputHandler) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}
	if k, ok := i.d.keyMap[ev.Key]; ok {
		i.d.pressed[k] = time.Now()
		return
	}
	if k, ok := hachi.KeyForRune(ev.Ch); ok {
		i.d.pressed[k] = time.Now()
	}
}

// runs one emulator cycle per frame. Draw is used because Tick is only
// called on input.
type stepper struct {
	d    *TermloopDriver
	ctx  context.Context
	step func() error
	err  error
	done bool
}

func (s *stepper) Draw(scr *tl.Screen) {
	if s.done {
		return
	}
	if err := s.ctx.Err(); err != nil {
		s.halt(err, "stopped")
		return
	}
	if err := s.step(); err != nil {
		s.halt(err, "halted: "+err.Error())
	}
}

func (s *stepper) Tick(ev tl.Event) {}

func (s *stepper) halt(err error, msg string) {
	s.err = err
	s.done = true
	s.d.status.SetText(msg + " (Ctrl+C to exit)")
}

func (d *TermloopDriver) OnInit(c *hachi.Chip8) error {
	if d.keyMap == nil {
		d.keyMap = map[tl.Key]uint8{
			tl.KeyArrowDown:  0x2,
			tl.KeyArrowLeft:  0x4,
			tl.KeyArrowRight: 0x6,
			tl.KeyArrowUp:    0x8,
			tl.KeyEnter:      0x5,
		}
	}
	d.pressed = make(map[uint8]time.Time)
	d.beeping = false
	d.lastScreen = hachi.Screen{}

	// init termloop
	d.g = tl.NewGame()
	scr := d.g.Screen()

	scr.AddEntity(&inputHandler{d})
	scr.AddEntity(tl.NewText(0, 0, "Stack   Syscalls",
		tl.ColorDefault, tl.ColorDefault))

	// stack
	d.stack = make([]*tl.Text, len(c.Stack))
	for i := range d.stack {
		d.stack[i] = tl.NewText(0, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.stack[i])
	}

	// syscall log
	for i := range d.syscalls {
		d.syscalls[i] = tl.NewText(8, i+1, "", tl.ColorDefault, tl.ColorDefault)
		scr.AddEntity(d.syscalls[i])
	}

	// chip info
	d.memory = tl.NewText(20, 0, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.memory)

	d.registers = tl.NewText(20, 1, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.registers)

	d.pointersAndTimers = tl.NewText(20, 2, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.pointersAndTimers)

	d.devices = tl.NewText(20, 3, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.devices)

	d.status = tl.NewText(20, 6+hachi.Height, "", tl.ColorDefault, tl.ColorDefault)
	scr.AddEntity(d.status)

	// screen preview at 20,5, pixels are added and removed as they change
	for y := range d.screen {
		for x := range d.screen[y] {
			d.screen[y][x] = tl.NewRectangle(20+x, 5+y, 1, 1, tl.ColorWhite)
		}
	}

	if d.logger != nil {
		d.logger.Debug("TermloopDriver initialized")
	}
	return nil
}

func (d *TermloopDriver) OnUpdate(c *hachi.Chip8) error {
	for k := range c.Keypad {
		t, ok := d.pressed[uint8(k)]
		c.Keypad[k] = ok && time.Since(t) <= keyHold
	}

	// update chip info
	d.memory.SetText(fmt.Sprintf("Memory: %v bytes", len(c.Memory)))
	d.registers.SetText(fmt.Sprintf("Registers: % 02X", c.V))
	d.pointersAndTimers.SetText(
		fmt.Sprintf("I: %04X SP: %v, PC: %04X, DT: %02X, ST: %02X",
			c.I, c.SP, c.PC, c.DT, c.ST))

	keypad := fmt.Sprintf("Keypad: %v", c.Keypad)
	if r, ok := c.WaitRegister(); ok {
		keypad += fmt.Sprintf(" (waiting, V%X)", r)
	}
	d.devices.SetText(keypad)

	// update stack
	for i := range d.stack {
		if i < c.SP {
			d.stack[i].SetText(fmt.Sprintf("%04X", c.Stack[i]))
		} else {
			d.stack[i].SetText("")
		}
	}
	return nil
}

func (d *TermloopDriver) UpdateScreen(c *hachi.Chip8) {
	d.printSyscall("DRW")

	scr := d.g.Screen()
	for y := range c.Screen {
		for x, px := range c.Screen[y] {
			switch {
			case px > d.lastScreen[y][x]:
				// this pixel was activated
				scr.AddEntity(d.screen[y][x])
			case px < d.lastScreen[y][x]:
				// this pixel was deactivated
				scr.RemoveEntity(d.screen[y][x])
			}
		}
	}

	d.lastScreen = c.Screen
}

// Beep logs tone starts, terminals have no sound output.
func (d *TermloopDriver) Beep(on bool) {
	if on && !d.beeping {
		d.printSyscall("BEEP")
	}
	d.beeping = on
}

// Loop starts termloop and blocks until the user presses Ctrl+C. Faults and
// cancellation stop the emulator but leave the last state on screen.
func (d *TermloopDriver) Loop(ctx context.Context, hz int, step func() error) error {
	s := &stepper{d: d, ctx: ctx, step: step}
	d.g.Screen().AddEntity(s)
	d.g.Screen().SetFps(float64(hz))
	d.g.Start()
	return s.err
}

func (d *TermloopDriver) Close() error { return nil }

func (d *TermloopDriver) SetData(key string, value any) error {
	switch key {
	case "key_map":
		newMap, ok := value.(map[tl.Key]uint8)
		if !ok {
			return fmt.Errorf("invalid type %s for key_map", reflect.TypeOf(value))
		}
		d.keyMap = newMap
	case "logger":
		logger, ok := value.(*log.Logger)
		if !ok {
			return fmt.Errorf("invalid type %s for logger", reflect.TypeOf(value))
		}
		d.logger = logger
	default:
		return fmt.Errorf("unknown data key '%s'", key)
	}
	return nil
}

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("termloop", &TermloopDriver{}); err != nil {
		panic(err)
	}
}
