package display

import (
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func setPixel(d *Display, x, y int) {
	d.Pixels()[x+y*d.Width()] = true
}

func countPixels(d *Display) int {
	count := 0
	for _, p := range d.Pixels() {
		if p {
			count++
		}
	}
	return count
}

func TestNew(t *testing.T) {
	d := New()
	assert.False(t, d.Highres())
	assert.Equal(t, LowresWidth, d.Width())
	assert.Equal(t, LowresHeight, d.Height())
	assert.Len(t, d.Pixels(), LowresWidth*LowresHeight)
	assert.Equal(t, 0, countPixels(d))
}

func TestClear(t *testing.T) {
	d := New()
	setPixel(d, 3, 4)
	setPixel(d, 63, 31)

	d.Clear()
	assert.Equal(t, 0, countPixels(d))
	assert.Len(t, d.Pixels(), LowresWidth*LowresHeight)
}

func TestSetHighres(t *testing.T) {
	t.Run("switch to high resolution keeps linear cells", func(t *testing.T) {
		d := New()
		setPixel(d, 0, 1) // linear index 64

		d.SetHighres(true)
		assert.True(t, d.Highres())
		assert.Equal(t, HighresWidth, d.Width())
		assert.Len(t, d.Pixels(), HighresWidth*HighresHeight)
		assert.True(t, d.Pixel(64, 0))
		assert.Equal(t, 1, countPixels(d))
	})

	t.Run("switch to low resolution drops cells", func(t *testing.T) {
		d := New()
		d.SetHighres(true)
		setPixel(d, 5, 0)
		setPixel(d, 127, 63)

		d.SetHighres(false)
		assert.False(t, d.Highres())
		assert.Len(t, d.Pixels(), LowresWidth*LowresHeight)
		assert.True(t, d.Pixel(5, 0))
		assert.Equal(t, 1, countPixels(d))
	})

	t.Run("same resolution is a no-op", func(t *testing.T) {
		d := New()
		setPixel(d, 1, 1)
		d.SetHighres(false)
		assert.True(t, d.Pixel(1, 1))
	})
}

func TestScroll(t *testing.T) {
	tests := []struct {
		name         string
		highres      bool
		direction    ScrollDirection
		amount       int
		lowresScroll bool
		x, y         int
		wantX, wantY int
		wantCount    int
	}{
		{"right", false, ScrollRight, 4, false, 10, 5, 14, 5, 1},
		{"left", false, ScrollLeft, 4, false, 10, 5, 6, 5, 1},
		{"down", false, ScrollDown, 3, false, 10, 5, 10, 8, 1},
		{"right off the edge", false, ScrollRight, 4, false, 62, 5, -1, -1, 0},
		{"left off the edge", false, ScrollLeft, 4, false, 2, 5, -1, -1, 0},
		{"down off the edge", false, ScrollDown, 4, false, 2, 30, -1, -1, 0},
		{"halved in low resolution", false, ScrollRight, 4, true, 10, 5, 12, 5, 1},
		{"not halved in high resolution", true, ScrollRight, 4, true, 10, 5, 14, 5, 1},
		{"high resolution down", true, ScrollDown, 10, false, 100, 50, 100, 60, 1},
		{"zero amount", false, ScrollDown, 0, false, 1, 1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.SetHighres(tt.highres)
			setPixel(d, tt.x, tt.y)

			d.Scroll(tt.direction, tt.amount, tt.lowresScroll)
			assert.Equal(t, tt.wantCount, countPixels(d))
			if tt.wantCount > 0 {
				assert.True(t, d.Pixel(tt.wantX, tt.wantY))
			}
		})
	}
}

func TestScrollKeepsRows(t *testing.T) {
	d := New()
	for x := range LowresWidth {
		setPixel(d, x, 0)
	}

	d.Scroll(ScrollRight, 4, false)
	for x := range LowresWidth {
		assert.Equal(t, x >= 4, d.Pixel(x, 0))
	}
	assert.False(t, d.Pixel(0, 1))
}

func TestRender(t *testing.T) {
	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.RGBA{A: 0xFF}

	d := New()
	setPixel(d, 1, 0)

	img := d.Render(on, off, 1)
	assert.Equal(t, LowresWidth, img.Bounds().Dx())
	assert.Equal(t, LowresHeight, img.Bounds().Dy())
	assert.Equal(t, on, img.RGBAAt(1, 0))
	assert.Equal(t, off, img.RGBAAt(0, 0))

	scaled := d.Render(on, off, 4)
	assert.Equal(t, LowresWidth*4, scaled.Bounds().Dx())
	assert.Equal(t, LowresHeight*4, scaled.Bounds().Dy())
	assert.Equal(t, on, scaled.RGBAAt(4, 0))
	assert.Equal(t, on, scaled.RGBAAt(7, 3))
	assert.Equal(t, off, scaled.RGBAAt(3, 0))
	assert.Equal(t, off, scaled.RGBAAt(8, 0))
}
