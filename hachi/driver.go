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
	"sort"
	"time"
)

// ErrQuit is returned by a driver when the user asked to stop the emulator.
// Session.Run treats it as a clean exit.
var ErrQuit = errors.New("quit requested")

// A Driver is an interface through which the emulator performs platform
// specific calls: input polling, drawing and sound.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	// Called before the emulator starts executing the program.
	OnInit(c *Chip8) error
	// Called before every cycle. Must write the current key states to
	// c.Keypad. Returning ErrQuit ends the session.
	OnUpdate(c *Chip8) error
	// Called after a cycle that modified the screen buffer.
	UpdateScreen(c *Chip8)
	// Called after every cycle with the state of the sound timer.
	Beep(on bool)
	// Loop calls step hz times per second until step fails, ctx is done or
	// the user quits. Drivers that own an event loop call step from it,
	// the others can use TickerLoop.
	Loop(ctx context.Context, hz int, step func() error) error
	// Sets driver specific options, see the driver's documentation.
	SetData(key string, value any) error
	// Releases whatever OnInit acquired.
	Close() error
}

// -----------------------------------------------------------------------------

var drivers map[string]Driver

// RegisterDriver registers a driver to a name. The driver can then be looked
// up by name when starting a Session.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func RegisterDriver(name string, drv Driver) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = drv
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to the emulator's
// execution.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// LookupDriver returns the driver registered as name.
func LookupDriver(name string) (Driver, error) {
	drv := drivers[name]
	if drv == nil {
		return nil, fmt.Errorf("driver %s not found (available: %v)",
			name, DriverNames())
	}
	return drv, nil
}

// DriverNames returns the names of all registered drivers, sorted.
func DriverNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TickerLoop calls step hz times per second until step returns an error or
// ctx is done.
func TickerLoop(ctx context.Context, hz int, step func() error) error {
	if hz <= 0 {
		return fmt.Errorf("invalid cycle rate %d", hz)
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := step(); err != nil {
				return err
			}
		}
	}
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver, which ignores all calls. The keypad is
// left untouched.
type NullDriver struct{}

func (d NullDriver) OnInit(c *Chip8) error   { return nil }
func (d NullDriver) OnUpdate(c *Chip8) error { return nil }
func (d NullDriver) UpdateScreen(c *Chip8)   {}
func (d NullDriver) Beep(on bool)            {}
func (d NullDriver) Close() error            { return nil }
func (d NullDriver) SetData(key string, value any) error {
	return fmt.Errorf("this driver has no settable data")
}

func (d NullDriver) Loop(ctx context.Context, hz int, step func() error) error {
	return TickerLoop(ctx, hz, step)
}

// -----------------------------------------------------------------------------

func init() {
	drivers = make(map[string]Driver)

	if err := RegisterDriver("null", NullDriver{}); err != nil {
		panic(err)
	}
}
