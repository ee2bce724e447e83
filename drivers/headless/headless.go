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

// Package headless implements a driver without any window or terminal.
//
// It runs a fixed number of cycles as fast as possible and can capture the
// tone to a WAV file and the last frame to a PNG file. It is meant for
// scripted runs and tests.
//
// Settings are passed through SetData:
//
//	"frames"     int, number of cycles to run (0 runs until cancelled)
//	"wav"        string, path of the WAV recording
//	"screenshot" string, path of the PNG written on Close
//	"scale"      int, screenshot pixel scale
//	"input"      func(cycle uint64) [hachi.Keys]bool, scripted keypad
package headless

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Mureke/rChip8/hachi"
	"github.com/Mureke/rChip8/snapshot"
	"github.com/Mureke/rChip8/tone"
)

// InputFunc returns the keypad state for the given cycle.
type InputFunc func(cycle uint64) [hachi.Keys]bool

// A HeadlessDriver runs programs without any output device.
type HeadlessDriver struct {
	frames     int
	wavPath    string
	screenshot string
	scale      int
	input      InputFunc

	cycle    uint64
	redraws  int
	recorder *tone.Recorder
	screen   hachi.Screen
}

// New returns a driver running frames cycles.
func New(frames int) *HeadlessDriver {
	return &HeadlessDriver{frames: frames, scale: 1}
}

func (d *HeadlessDriver) OnInit(c *hachi.Chip8) error {
	d.cycle = 0
	d.redraws = 0
	d.recorder = nil
	d.screen = c.Screen
	return nil
}

func (d *HeadlessDriver) OnUpdate(c *hachi.Chip8) error {
	if d.input != nil {
		c.Keypad = d.input(d.cycle)
	}
	d.cycle++
	return nil
}

func (d *HeadlessDriver) UpdateScreen(c *hachi.Chip8) {
	d.screen = c.Screen
	d.redraws++
}

func (d *HeadlessDriver) Beep(on bool) {
	if d.recorder != nil {
		d.recorder.Cycle(on)
	}
}

// Loop runs step without pausing between cycles.
func (d *HeadlessDriver) Loop(ctx context.Context, hz int, step func() error) error {
	if d.wavPath != "" {
		d.recorder = tone.NewRecorder(hz)
	}

	for i := 0; d.frames == 0 || i < d.frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Close writes the requested captures.
func (d *HeadlessDriver) Close() error {
	var errs []error
	if d.recorder != nil && d.wavPath != "" {
		errs = append(errs, d.recorder.WriteFile(d.wavPath))
	}
	if d.screenshot != "" {
		errs = append(errs, snapshot.Save(d.screenshot, &d.screen, d.scale))
	}
	return errors.Join(errs...)
}

func (d *HeadlessDriver) SetData(key string, value any) error {
	switch key {
	case "frames", "scale":
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("invalid type %s for %s", reflect.TypeOf(value), key)
		}
		if key == "frames" {
			d.frames = n
		} else {
			d.scale = n
		}
	case "wav", "screenshot":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("invalid type %s for %s", reflect.TypeOf(value), key)
		}
		if key == "wav" {
			d.wavPath = s
		} else {
			d.screenshot = s
		}
	case "input":
		switch f := value.(type) {
		case InputFunc:
			d.input = f
		case func(uint64) [hachi.Keys]bool:
			d.input = f
		default:
			return fmt.Errorf("invalid type %s for input", reflect.TypeOf(value))
		}
	default:
		return fmt.Errorf("unknown data key '%s'", key)
	}
	return nil
}

// Cycles returns the number of cycles run since OnInit.
func (d *HeadlessDriver) Cycles() uint64 { return d.cycle }

// Redraws returns the number of screen updates received since OnInit.
func (d *HeadlessDriver) Redraws() int { return d.redraws }

// Screen returns the last frame received.
func (d *HeadlessDriver) Screen() *hachi.Screen { return &d.screen }

// Recorder returns the tone recording of the last run, if any.
func (d *HeadlessDriver) Recorder() *tone.Recorder { return d.recorder }

// -----------------------------------------------------------------------------

func init() {
	if err := hachi.RegisterDriver("headless", New(0)); err != nil {
		panic(err)
	}
}
