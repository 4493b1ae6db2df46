package display

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/sweeney/countdown-timer/internal/countdown"
)

// Panel geometry: 16 columns by 4 rows of 7x13 glyphs on a 128x32 panel.
// Rows 2 and 3 of the frame are always blank in practice, and only the
// first two rows fit the 13 px face anyway; they are still rendered so a
// frame with content there would visibly overflow rather than silently
// vanish.
const (
	panelW = 128
	panelH = 32
	cellW  = 7
	rowH   = 13
)

// renderFrame rasterizes the 64-cell frame onto a fresh 1-bit image the
// size of the panel.
func renderFrame(f countdown.Frame) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, panelW, panelH))
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for row := 0; row < 4; row++ {
		text := f.Row(row)
		if text == "                " {
			continue
		}
		// Dot is the baseline; Face7x13 ascends 11 px.
		d.Dot = fixed.P(0, row*rowH+11)
		d.DrawString(text)
	}
	return img
}
