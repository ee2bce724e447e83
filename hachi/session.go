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

package hachi

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// DefaultHz is the cycle rate used when none is given: one cycle per timer
// tick.
const DefaultHz = 60

// A Session connects a Chip8 to a Driver and runs it at a fixed cycle rate.
type Session struct {
	c      *Chip8
	drv    Driver
	hz     int
	logger *log.Logger
	cycles uint64
}

// NewSession prepares a session for c on drv. hz <= 0 selects DefaultHz.
func NewSession(c *Chip8, drv Driver, hz int, logger *log.Logger) *Session {
	if hz <= 0 {
		hz = DefaultHz
	}
	if logger == nil {
		logger = c.logger
	}
	return &Session{c: c, drv: drv, hz: hz, logger: logger}
}

// Cycles returns the number of cycles executed so far.
func (s *Session) Cycles() uint64 { return s.cycles }

// Step polls input, runs one cycle and forwards its side effects to the
// driver.
func (s *Session) Step() error {
	if err := s.drv.OnUpdate(s.c); err != nil {
		return err
	}

	pc := s.c.PC
	res, err := s.c.Cycle()
	if err != nil {
		return fmt.Errorf("cycle %d at %04X: %w", s.cycles, pc, err)
	}
	s.cycles++

	if res.Redraw {
		s.drv.UpdateScreen(s.c)
	}
	s.drv.Beep(res.Tone)
	return nil
}

// Run initializes the driver and executes cycles until the driver quits, ctx
// is cancelled or the program faults. A quit request is not an error.
func (s *Session) Run(ctx context.Context) (err error) {
	if err = s.drv.OnInit(s.c); err != nil {
		// release whatever was acquired before the failure
		return errors.Join(fmt.Errorf("initializing driver: %w", err), s.drv.Close())
	}
	defer func() {
		if cerr := s.drv.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing driver: %w", cerr)
		}
	}()

	s.logger.Debug("Session started", log.Int("hz", s.hz))
	err = s.drv.Loop(ctx, s.hz, s.Step)
	s.logger.Debug("Session ended", log.Int("cycles", int(s.cycles)))

	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
