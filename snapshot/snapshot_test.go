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

package snapshot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mureke/rChip8/hachi"
	"github.com/retroenv/retrogolib/assert"
)

func testScreen() *hachi.Screen {
	var s hachi.Screen
	s[0][0] = 1
	s[31][63] = 1
	return &s
}

func TestFrame(t *testing.T) {
	img := Frame(testScreen())

	assert.Equal(t, hachi.Width, img.Bounds().Dx())
	assert.Equal(t, hachi.Height, img.Bounds().Dy())
	assert.Equal(t, Foreground, img.NRGBAAt(0, 0))
	assert.Equal(t, Foreground, img.NRGBAAt(63, 31))
	assert.Equal(t, Background, img.NRGBAAt(1, 0))
}

func TestScaled(t *testing.T) {
	img := Scaled(testScreen(), 4)

	assert.Equal(t, hachi.Width*4, img.Bounds().Dx())
	assert.Equal(t, hachi.Height*4, img.Bounds().Dy())
	assert.Equal(t, Foreground, img.NRGBAAt(3, 3))
	assert.Equal(t, Background, img.NRGBAAt(4, 0))
	assert.Equal(t, Foreground, img.NRGBAAt(255, 127))

	native := Scaled(testScreen(), 0)
	assert.Equal(t, hachi.Width, native.Bounds().Dx())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	assert.NoError(t, Save(path, testScreen(), 2))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, hachi.Width*2, img.Bounds().Dx())
	assert.Equal(t, hachi.Height*2, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r&g&b)
	r, g, b, _ = img.At(2, 0).RGBA()
	assert.Equal(t, uint32(0), r|g|b)
}

func TestSaveBadPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", "frame.png"), testScreen(), 1)
	assert.ErrorContains(t, err, "creating screenshot")
}
