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
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// A Recorder captures the beeper output in memory, one cycle at a time, and
// writes it out as a mono 16-bit WAV file.
type Recorder struct {
	wave       *SquareWave
	sampleRate int
	perCycle   int
	scratch    []float32
	data       []int
}

// NewRecorder returns a recorder for an emulator running hz cycles per
// second.
func NewRecorder(hz int) *Recorder {
	if hz <= 0 {
		hz = 60
	}
	perCycle := SampleRate / hz
	return &Recorder{
		wave:       NewBeeper(),
		sampleRate: SampleRate,
		perCycle:   perCycle,
		scratch:    make([]float32, perCycle),
	}
}

// Cycle appends one cycle worth of samples, with the tone on or off.
func (r *Recorder) Cycle(on bool) {
	r.wave.SetOn(on)
	r.wave.Fill(r.scratch)
	for _, s := range r.scratch {
		r.data = append(r.data, int(math.Round(float64(s)*math.MaxInt16)))
	}
}

// Samples returns the recorded PCM data.
func (r *Recorder) Samples() []int { return r.data }

// Duration returns the recorded length in seconds.
func (r *Recorder) Duration() float64 {
	return float64(len(r.data)) / float64(r.sampleRate)
}

// Encode writes the recording as WAV to w.
func (r *Recorder) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, r.sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  r.sampleRate,
		},
		Data:           r.data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

// WriteFile writes the recording to a WAV file at path.
func (r *Recorder) WriteFile(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	return r.Encode(f)
}
