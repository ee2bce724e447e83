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

package ebiten

import (
	"fmt"
	"sync"

	"github.com/Mureke/rChip8/tone"
	"github.com/ebitengine/oto/v3"
)

// oto allows only one context per process
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func audioContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   tone.SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("creating audio context: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// beeper streams a gated square wave. The player runs for the whole session
// and plays silence while the tone is off.
type beeper struct {
	wave   *tone.SquareWave
	player *oto.Player
}

func newBeeper() (*beeper, error) {
	ctx, err := audioContext()
	if err != nil {
		return nil, err
	}

	b := &beeper{wave: tone.NewBeeper()}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()
	return b, nil
}

func (b *beeper) set(on bool) { b.wave.SetOn(on) }

func (b *beeper) close() {
	b.wave.SetOn(false)
	b.player.Pause()
	_ = b.player.Close()
}
