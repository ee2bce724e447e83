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

// Package sdl implements a driver on top of SDL2: a window with one
// rectangle per lit pixel, the keyboard state as keypad and the tone as
// queued audio.
//
// Keys follow hachi.KeyLayout. Escape or closing the window quits.
//
// Settings are passed through SetData:
//
//	"scale"  int, window pixel scale
//	"logger" *log.Logger
package sdl

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"runtime"

	"github.com/Mureke/rChip8/hachi"
	"github.com/Mureke/rChip8/tone"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// An SDLDriver shows the screen in an SDL window.
type SDLDriver struct {
	scale  int
	logger *log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer
	scancode [hachi.Keys]sdl.Scancode

	audio   sdl.AudioDeviceID
	wave    *tone.SquareWave
	samples []float32
	chunk   []byte
}

func (d *SDLDriver) OnInit(c *hachi.Chip8) error {
	if d.logger == nil {
		d.logger = log.NewWithConfig(log.DefaultConfig())
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}

	var err error
	d.window, err = sdl.CreateWindow("hachi8",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(hachi.Width*d.scale), int32(hachi.Height*d.scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	d.renderer, err = sdl.CreateRenderer(d.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	for r, k := range hachi.KeyLayout {
		d.scancode[k] = sdl.GetScancodeFromKey(sdl.Keycode(r))
	}

	if err := d.openAudio(); err != nil {
		d.logger.Warn("Sound disabled", log.Err(err))
	}

	d.UpdateScreen(c)
	d.logger.Debug("SDLDriver initialized", log.Int("scale", d.scale))
	return nil
}

func (d *SDLDriver) openAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     tone.SampleRate,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  1024,
	}

	var actual sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &actual, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	d.audio = id
	d.wave = tone.NewBeeper()
	d.wave.SetOn(true)
	sdl.PauseAudioDevice(d.audio, false)
	return nil
}

// OnUpdate drains the event queue and reads the keyboard state.
func (d *SDLDriver) OnUpdate(c *hachi.Chip8) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return hachi.ErrQuit
		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				return hachi.ErrQuit
			}
		}
	}

	state := sdl.GetKeyboardState()
	for k, sc := range d.scancode {
		c.Keypad[k] = int(sc) < len(state) && state[sc] != 0
	}
	return nil
}

func (d *SDLDriver) UpdateScreen(c *hachi.Chip8) {
	_ = d.renderer.SetDrawColor(0, 0, 0, 0xFF)
	_ = d.renderer.Clear()
	_ = d.renderer.SetDrawColor(0xFF, 0xFF, 0xFF, 0xFF)

	size := int32(d.scale)
	for y := range c.Screen {
		for x, px := range c.Screen[y] {
			if px == 0 {
				continue
			}
			_ = d.renderer.FillRect(&sdl.Rect{
				X: int32(x) * size,
				Y: int32(y) * size,
				W: size,
				H: size,
			})
		}
	}
	d.renderer.Present()
}

// Beep keeps about two cycles worth of tone queued while on and drops the
// queue when off.
func (d *SDLDriver) Beep(on bool) {
	if d.audio == 0 || d.chunk == nil {
		return
	}
	if !on {
		sdl.ClearQueuedAudio(d.audio)
		return
	}
	if sdl.GetQueuedAudioSize(d.audio) >= uint32(2*len(d.chunk)) {
		return
	}

	d.wave.Fill(d.samples)
	for i, s := range d.samples {
		binary.LittleEndian.PutUint32(d.chunk[i*4:], math.Float32bits(s))
	}
	if err := sdl.QueueAudio(d.audio, d.chunk); err != nil {
		d.logger.Error("Queueing audio failed", log.Err(err))
	}
}

// Loop runs step on a ticker. SDL needs the main thread, so this must be
// called from the main goroutine.
func (d *SDLDriver) Loop(ctx context.Context, hz int, step func() error) error {
	if hz > 0 {
		d.samples = make([]float32, tone.SampleRate/hz)
		d.chunk = make([]byte, len(d.samples)*4)
	}
	return hachi.TickerLoop(ctx, hz, step)
}

func (d *SDLDriver) Close() error {
	if d.audio != 0 {
		sdl.CloseAudioDevice(d.audio)
		d.audio = 0
	}
	if d.renderer != nil {
		_ = d.renderer.Destroy()
		d.renderer = nil
	}
	if d.window != nil {
		_ = d.window.Destroy()
		d.window = nil
	}
	sdl.Quit()
	return nil
}

func (d *SDLDriver) SetData(key string, value any) error {
	switch key {
	case "scale":
		n, ok := value.(int)
		if !ok || n < 1 {
			return fmt.Errorf("invalid scale %v", value)
		}
		d.scale = n
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
	// SDL calls must come from the main thread
	runtime.LockOSThread()

	if err := hachi.RegisterDriver("sdl", &SDLDriver{scale: 10}); err != nil {
		panic(err)
	}
}
