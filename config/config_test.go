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

package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, "termloop", opts.Driver)
	assert.Equal(t, 60, opts.Hz)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, 600, opts.Frames)
	assert.False(t, opts.Legacy)
	assert.False(t, opts.Disasm)
}

func TestParseFlags(t *testing.T) {
	opts, err := ParseFlags([]string{
		"-driver", "HEADLESS", "-hz", "500", "-legacy", "-seed", "7",
		"-frames", "10", "-wav", "out.wav", "-screenshot", "out.png",
		"-debug", "pong.ch8",
	})
	assert.NoError(t, err)

	assert.Equal(t, "headless", opts.Driver)
	assert.Equal(t, 500, opts.Hz)
	assert.True(t, opts.Legacy)
	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, 10, opts.Frames)
	assert.Equal(t, "out.wav", opts.Wav)
	assert.Equal(t, "out.png", opts.Screenshot)
	assert.True(t, opts.Debug)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"help", []string{"-h"}, "invalid usage"},
		{"unknown flag", []string{"-nope", "pong.ch8"}, "not defined"},
		{"no program", []string{"-debug"}, "no program file given"},
		{"extra argument", []string{"a.ch8", "b.ch8"}, "unexpected argument b.ch8"},
		{"bad driver", []string{"-driver", "vga", "a.ch8"}, "unsupported driver"},
		{"bad hz", []string{"-hz", "0", "a.ch8"}, "cycle rate must be positive"},
		{"wav without headless", []string{"-wav", "x.wav", "a.ch8"}, "require the headless driver"},
		{"debug and quiet", []string{"-debug", "-q", "a.ch8"}, "can not be combined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.ErrorContains(t, err, tt.msg)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.ShowUsage(&buf)
			assert.Contains(t, buf.String(), "usage: hachi8")
			assert.Contains(t, buf.String(), "-driver")
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Options{Input: "a.ch8", Driver: "null", Hz: 60, Scale: 1}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(o *Options)
	}{
		{"missing input", func(o *Options) { o.Input = "" }},
		{"scale", func(o *Options) { o.Scale = 0 }},
		{"frames", func(o *Options) { o.Frames = -1 }},
		{"screenshot", func(o *Options) { o.Screenshot = "a.png" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.modify(&o)
			assert.Error(t, o.Validate())
		})
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
