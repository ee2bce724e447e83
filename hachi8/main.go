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

// Command hachi8 runs or disassembles a CHIP-8 program.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Mureke/rChip8/config"
	_ "github.com/Mureke/rChip8/drivers"
	"github.com/Mureke/rChip8/hachi"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)

	if err := run(ctx, logger, opts); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			// Handle context cancellation (Ctrl+C) gracefully
			logger.Info("Operation cancelled")
			return
		case errors.Is(err, hachi.ErrInvalidProgram):
			fmt.Fprintln(os.Stderr, "invalid ROM")
			logger.Error("Emulation stopped", log.Err(err))
		default:
			logger.Error("Emulation failed", log.Err(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	c := hachi.New(&hachi.Settings{
		LegacyMode: opts.Legacy,
		Random:     hachi.NewRandom(opts.Seed),
		Logger:     logger,
	})

	size, err := c.Load(opts.Input)
	if err != nil {
		return err
	}

	if opts.Disasm {
		return printDisassembly(os.Stdout, c.Program(size))
	}

	drv, err := hachi.LookupDriver(opts.Driver)
	if err != nil {
		return err
	}
	if err := configureDriver(drv, opts, logger); err != nil {
		return err
	}

	session := hachi.NewSession(c, drv, opts.Hz, logger)
	if err := session.Run(ctx); err != nil {
		logger.Debug("Machine state", log.Stringer("chip8", c))
		return err
	}
	logger.Info("Finished", log.Int("cycles", int(session.Cycles())))
	return nil
}

// configureDriver passes the options that concern the selected driver.
func configureDriver(drv hachi.Driver, opts config.Options, logger *log.Logger) error {
	type setting struct {
		key   string
		value any
	}

	var settings []setting
	switch opts.Driver {
	case "termloop":
		settings = []setting{{"logger", logger}}
	case "ebiten", "sdl":
		settings = []setting{{"logger", logger}, {"scale", opts.Scale}}
	case "headless":
		settings = []setting{
			{"frames", opts.Frames},
			{"scale", opts.Scale},
			{"wav", opts.Wav},
			{"screenshot", opts.Screenshot},
		}
	}

	for _, s := range settings {
		if err := drv.SetData(s.key, s.value); err != nil {
			return fmt.Errorf("configuring %s driver: %w", opts.Driver, err)
		}
	}
	return nil
}

func printDisassembly(out io.Writer, program []byte) error {
	w := tabwriter.NewWriter(out, 8, 8, 0, '\t', 0)
	fmt.Fprintln(w, "addr\topcode\tpseudo-code\tascii\tdescription\t")

	for _, l := range hachi.Disassemble(program, hachi.ProgramStart) {
		asciitext := ""
		if ascii := l.ASCII(); ascii != "" {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if l.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(w, "%04X\t"+opcodeFormatter+"\t%v\t%s\t%s\n",
			l.Address, l.Opcode(), l, asciitext, l.Description())
	}

	return w.Flush()
}
