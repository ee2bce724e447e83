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

// Package config handles command line parsing and application setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Drivers that can be selected with -driver.
var Drivers = []string{"termloop", "ebiten", "sdl", "headless", "null"}

// Options holds everything the command line can set.
type Options struct {
	Input string

	Driver     string
	Hz         int
	Legacy     bool
	Seed       uint64
	Scale      int
	Disasm     bool
	Frames     int
	Wav        string
	Screenshot string

	Debug bool
	Quiet bool
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: hachi8 [options] <program.ch8>\n\n")
	if e.msg != "" {
		fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	fmt.Fprintln(w)
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Driver, "driver", "termloop", "front-end to run the program with ("+strings.Join(Drivers, "/")+")")
	flags.IntVar(&opts.Hz, "hz", 60, "cycles per second, timers count down once per cycle")
	flags.BoolVar(&opts.Legacy, "legacy", false, "use the old behaviour of SHL, SHR, LD [I],VX and LD VX,[I]")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for RND, 0 picks a time based seed")
	flags.IntVar(&opts.Scale, "scale", 10, "window and screenshot pixel scale")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the program and exit")
	flags.IntVar(&opts.Frames, "frames", 600, "number of cycles to run with the headless driver")
	flags.StringVar(&opts.Wav, "wav", "", "record the tone to a WAV file (headless driver)")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "save the last frame to a PNG file (headless driver)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// ParseFlags parses the command line arguments, without the program name,
// into validated options.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("hachi8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return opts, &UsageError{flags: flags, msg: "no program file given"}
	}
	if len(rest) > 1 {
		return opts, &UsageError{
			flags: flags,
			msg: fmt.Sprintf("unexpected argument %s after the program file, "+
				"please pass the program file as last argument", rest[1]),
		}
	}
	opts.Input = rest[0]
	opts.Driver = strings.ToLower(opts.Driver)

	if err := opts.Validate(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// Validate checks option values and combinations.
func (o Options) Validate() error {
	if o.Input == "" {
		return errors.New("missing program file")
	}
	if !slices.Contains(Drivers, o.Driver) {
		return fmt.Errorf("unsupported driver: %s. Valid options: %s",
			o.Driver, strings.Join(Drivers, ", "))
	}
	if o.Hz <= 0 {
		return fmt.Errorf("cycle rate must be positive, got %d", o.Hz)
	}
	if o.Scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", o.Scale)
	}
	if o.Frames < 0 {
		return fmt.Errorf("frame count must not be negative, got %d", o.Frames)
	}
	if (o.Wav != "" || o.Screenshot != "") && o.Driver != "headless" {
		return errors.New("-wav and -screenshot require the headless driver")
	}
	if o.Debug && o.Quiet {
		return errors.New("-debug and -q can not be combined")
	}
	return nil
}
