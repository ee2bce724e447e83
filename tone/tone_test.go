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

package tone

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWaveSilentWhenOff(t *testing.T) {
	w := NewBeeper()
	out := []float32{1, 1, 1, 1}
	w.Fill(out)
	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
	assert.False(t, w.On())
}

func TestSquareWaveShape(t *testing.T) {
	w := NewBeeper()
	w.SetOn(true)
	assert.True(t, w.On())

	// 440 Hz at 44100 Hz is about 100 samples per period
	out := make([]float32, 100)
	w.Fill(out)

	assert.Equal(t, float32(Volume), out[0])
	assert.Equal(t, float32(Volume), out[40])
	assert.Equal(t, float32(-Volume), out[60])
	assert.Equal(t, float32(-Volume), out[90])

	for _, s := range out {
		assert.True(t, s == float32(Volume) || s == float32(-Volume))
	}
}

func TestSquareWaveRead(t *testing.T) {
	w := NewBeeper()
	w.SetOn(true)

	p := make([]byte, 18)
	n, err := w.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, 16, n)

	first := math.Float32frombits(binary.LittleEndian.Uint32(p))
	assert.Equal(t, float32(Volume), first)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(60)
	r.Cycle(false)
	r.Cycle(true)

	samples := r.Samples()
	assert.Len(t, samples, 2*SampleRate/60)
	assert.Equal(t, 0, samples[0])
	assert.Equal(t, 1638, samples[SampleRate/60])
	assert.Equal(t, 2.0/60, r.Duration())
}

func TestRecorderDefaultRate(t *testing.T) {
	r := NewRecorder(0)
	r.Cycle(true)
	assert.Len(t, r.Samples(), SampleRate/60)
}

func TestRecorderWriteFile(t *testing.T) {
	r := NewRecorder(60)
	for i := range 10 {
		r.Cycle(i%2 == 0)
	}

	path := filepath.Join(t.TempDir(), "beep.wav")
	assert.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, len(data) > 10*SampleRate/60*2)

	dec := wav.NewDecoder(bytes.NewReader(data))
	assert.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
}
