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

// Package snapshot turns the CHIP-8 framebuffer into images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/Mureke/rChip8/hachi"
	"golang.org/x/image/draw"
)

// Colors used for lit and unlit pixels.
var (
	Foreground = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Background = color.NRGBA{A: 0xFF}
)

// Frame returns the framebuffer at its native 64x32 resolution.
func Frame(s *hachi.Screen) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, hachi.Width, hachi.Height))
	for y := range s {
		for x, px := range s[y] {
			if px != 0 {
				img.SetNRGBA(x, y, Foreground)
			} else {
				img.SetNRGBA(x, y, Background)
			}
		}
	}
	return img
}

// Scaled returns the framebuffer blown up by scale in both directions,
// without smoothing. A scale below 1 is treated as 1.
func Scaled(s *hachi.Screen, scale int) *image.NRGBA {
	src := Frame(s)
	if scale <= 1 {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, hachi.Width*scale, hachi.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes the scaled framebuffer to w as PNG.
func Encode(w io.Writer, s *hachi.Screen, scale int) error {
	if err := png.Encode(w, Scaled(s, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save writes the scaled framebuffer to a PNG file.
func Save(path string, s *hachi.Screen, scale int) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing screenshot: %w", err)
		}
	}()

	return Encode(f, s, scale)
}
