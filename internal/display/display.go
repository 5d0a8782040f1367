// Package display implements the monochrome pixel display of the virtual machine.
package display

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Display resolutions.
const (
	LowresWidth   = 64
	LowresHeight  = 32
	HighresWidth  = 128
	HighresHeight = 64
)

// ScrollDirection is the direction to shift the display content to.
type ScrollDirection int

// Supported scroll directions.
const (
	ScrollRight ScrollDirection = iota
	ScrollLeft
	ScrollDown
)

// Display is a pixel bitmap of either 64x32 or 128x64 pixels.
// The buffer length always equals width*height of the current resolution.
type Display struct {
	pixels  []bool
	highres bool
}

// New returns a cleared low resolution display.
func New() *Display {
	return &Display{
		pixels: make([]bool, LowresWidth*LowresHeight),
	}
}

// Highres returns whether the display is in 128x64 mode.
func (d *Display) Highres() bool {
	return d.highres
}

// Width returns the width in pixels of the current resolution.
func (d *Display) Width() int {
	if d.highres {
		return HighresWidth
	}
	return LowresWidth
}

// Height returns the height in pixels of the current resolution.
func (d *Display) Height() int {
	if d.highres {
		return HighresHeight
	}
	return LowresHeight
}

// Pixels returns the live pixel buffer in row-major order.
func (d *Display) Pixels() []bool {
	return d.pixels
}

// Pixel returns the state of the pixel at the given coordinates.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[x+y*d.Width()]
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	clear(d.pixels)
}

// SetHighres switches the resolution. The buffer is reinterpreted and not
// cleared: cells keep their linear index, new cells are off and cells beyond
// the new size are dropped.
func (d *Display) SetHighres(highres bool) {
	if d.highres == highres {
		return
	}
	d.highres = highres

	size := d.Width() * d.Height()
	if size <= len(d.pixels) {
		d.pixels = d.pixels[:size:size]
		return
	}
	pixels := make([]bool, size)
	copy(pixels, d.pixels)
	d.pixels = pixels
}

// Scroll shifts the display content by amount pixels into the given direction.
// Pixels shifted off the edge are lost and the vacated area is cleared.
// If lowresScroll is set and the display is in low resolution mode, the
// amount is halved.
func (d *Display) Scroll(direction ScrollDirection, amount int, lowresScroll bool) {
	if lowresScroll && !d.highres {
		amount /= 2
	}
	width := d.Width()
	height := d.Height()
	if amount <= 0 {
		return
	}

	switch direction {
	case ScrollRight:
		amount = min(amount, width)
		for y := range height {
			row := d.pixels[y*width : (y+1)*width]
			copy(row[amount:], row[:width-amount])
			clear(row[:amount])
		}

	case ScrollLeft:
		amount = min(amount, width)
		for y := range height {
			row := d.pixels[y*width : (y+1)*width]
			copy(row, row[amount:])
			clear(row[width-amount:])
		}

	case ScrollDown:
		amount = min(amount, height)
		copy(d.pixels[amount*width:], d.pixels[:(height-amount)*width])
		clear(d.pixels[:amount*width])
	}
}

// Render maps the pixels to the given colors and scales the image by the
// given factor using nearest neighbor sampling.
func (d *Display) Render(on, off color.Color, scale int) *image.RGBA {
	width := d.Width()
	height := d.Height()

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			c := off
			if d.pixels[x+y*width] {
				c = on
			}
			src.Set(x, y, c)
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
