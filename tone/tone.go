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

// Package tone generates the beeper sound played while the sound timer runs.
package tone

import (
	"encoding/binary"
	"math"
	"sync"
)

// Beeper defaults.
const (
	SampleRate = 44100
	Frequency  = 440.0
	Volume     = 0.05
)

// A SquareWave is a gated square wave generator. It produces silence while
// off; the phase only advances while on. It is safe for concurrent use, so
// an audio callback can read from it while the emulator toggles it.
type SquareWave struct {
	mu       sync.Mutex
	phase    float32
	phaseInc float32
	volume   float32
	on       bool
}

// NewSquareWave returns a wave of the given frequency for a device running at
// sampleRate.
func NewSquareWave(sampleRate int, frequency float64, volume float32) *SquareWave {
	return &SquareWave{
		phaseInc: float32(frequency / float64(sampleRate)),
		volume:   volume,
	}
}

// NewBeeper returns the default 440 Hz wave.
func NewBeeper() *SquareWave {
	return NewSquareWave(SampleRate, Frequency, Volume)
}

// SetOn starts or stops the tone.
func (w *SquareWave) SetOn(on bool) {
	w.mu.Lock()
	w.on = on
	w.mu.Unlock()
}

// On reports whether the tone is playing.
func (w *SquareWave) On() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.on
}

// Fill writes the next len(out) samples.
func (w *SquareWave) Fill(out []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.on {
		clear(out)
		return
	}
	for i := range out {
		if w.phase <= 0.5 {
			out[i] = w.volume
		} else {
			out[i] = -w.volume
		}
		w.phase = float32(math.Mod(float64(w.phase+w.phaseInc), 1))
	}
}

// Read fills p with mono little endian float32 samples. It never fails and
// never returns io.EOF, which makes the wave usable as an endless player
// source.
func (w *SquareWave) Read(p []byte) (int, error) {
	samples := make([]float32, len(p)/4)
	w.Fill(samples)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return len(samples) * 4, nil
}
