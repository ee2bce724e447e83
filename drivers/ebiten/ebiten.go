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

// Package ebiten implements a windowed driver on top of ebiten, with the
// tone played through oto.
//
// Keys follow hachi.KeyLayout. Escape or closing the window quits, F12 saves
// a screenshot to chip8-<time>.png.
//
// Settings are passed through SetData:
//
//	"scale"  int, window pixel scale
//	"title"  string, window title
//	"logger" *log.Logger
package ebiten

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/Mureke/rChip8/hachi"
	"github.com/Mureke/rChip8/snapshot"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

var keys = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// An EbitenDriver shows the screen in a window.
type EbitenDriver struct {
	scale  int
	title  string
	logger *log.Logger

	frame  *ebiten.Image
	pixels []byte
	screen hachi.Screen
	audio  *beeper
}

// game adapts the driver to ebiten.Game for the duration of Loop.
type game struct {
	d    *EbitenDriver
	ctx  context.Context
	step func() error
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.ctx.Err(); err != nil {
		return err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.d.screenshot()
	}
	return g.step()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.d.frame.WritePixels(g.d.pixels)
	screen.DrawImage(g.d.frame, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return hachi.Width, hachi.Height
}

func (d *EbitenDriver) OnInit(c *hachi.Chip8) error {
	if d.logger == nil {
		d.logger = log.NewWithConfig(log.DefaultConfig())
	}

	d.frame = ebiten.NewImage(hachi.Width, hachi.Height)
	d.pixels = make([]byte, hachi.Width*hachi.Height*4)
	d.UpdateScreen(c)

	audio, err := newBeeper()
	if err != nil {
		d.logger.Warn("Sound disabled", log.Err(err))
	} else {
		d.audio = audio
	}

	ebiten.SetWindowSize(hachi.Width*d.scale, hachi.Height*d.scale)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowClosingHandled(true)

	d.logger.Debug("EbitenDriver initialized", log.Int("scale", d.scale))
	return nil
}

func (d *EbitenDriver) OnUpdate(c *hachi.Chip8) error {
	for key, k := range keys {
		c.Keypad[k] = ebiten.IsKeyPressed(key)
	}
	return nil
}

func (d *EbitenDriver) UpdateScreen(c *hachi.Chip8) {
	d.screen = c.Screen
	for y := range c.Screen {
		for x, px := range c.Screen[y] {
			var v byte
			if px != 0 {
				v = 0xFF
			}
			i := (y*hachi.Width + x) * 4
			d.pixels[i] = v
			d.pixels[i+1] = v
			d.pixels[i+2] = v
			d.pixels[i+3] = 0xFF
		}
	}
}

func (d *EbitenDriver) Beep(on bool) {
	if d.audio != nil {
		d.audio.set(on)
	}
}

// Loop runs the ebiten game loop at hz ticks per second, one cycle per tick.
// It must be called from the main goroutine.
func (d *EbitenDriver) Loop(ctx context.Context, hz int, step func() error) error {
	ebiten.SetTPS(hz)
	// RunGame returns nil once Update returns ebiten.Termination
	return ebiten.RunGame(&game{d: d, ctx: ctx, step: step})
}

func (d *EbitenDriver) Close() error {
	if d.audio != nil {
		d.audio.close()
		d.audio = nil
	}
	if d.frame != nil {
		d.frame.Deallocate()
		d.frame = nil
	}
	return nil
}

func (d *EbitenDriver) screenshot() {
	name := fmt.Sprintf("chip8-%s.png", time.Now().Format("20060102-150405"))
	if err := snapshot.Save(name, &d.screen, d.scale); err != nil {
		d.logger.Error("Saving screenshot failed", log.Err(err))
		return
	}
	d.logger.Info("Saved screenshot", log.String("file", name))
}

func (d *EbitenDriver) SetData(key string, value any) error {
	switch key {
	case "scale":
		n, ok := value.(int)
		if !ok || n < 1 {
			return fmt.Errorf("invalid scale %v", value)
		}
		d.scale = n
	case "title":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("invalid type %s for title", reflect.TypeOf(value))
		}
		d.title = s
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
	err := hachi.RegisterDriver("ebiten", &EbitenDriver{scale: 10, title: "hachi8"})
	if err != nil {
		panic(err)
	}
}
