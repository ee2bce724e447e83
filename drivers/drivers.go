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

// Package drivers contains the front-end drivers for hachi.
// Importing this package loads and registers all drivers. If you only need to
// use one of them, just import the specific driver package.
// To implement your own drivers, see the Driver interface in package hachi.
package drivers

import (
	_ "github.com/Mureke/rChip8/drivers/ebiten"
	_ "github.com/Mureke/rChip8/drivers/headless"
	_ "github.com/Mureke/rChip8/drivers/sdl"
	_ "github.com/Mureke/rChip8/drivers/termloop"
)
