package instructions

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"cutfield/internal/layout"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Sheet layout in pixels.
const (
	sheetMargin = 16
	cellSize    = 40
	cellGap     = 2
	lineHeight  = 16
	swatchSize  = 12
)

var (
	paper = color.RGBA{0xd7, 0xcb, 0xb1, 0xff}
	ink   = color.RGBA{0x20, 0x1c, 0x18, 0xff}
)

// RenderSheet draws the placement grid, one labelled swatch per cell, with
// the piece counts listed underneath.
func RenderSheet(s *Summary) *image.RGBA {
	face := basicfont.Face7x13

	gridW := s.Width*(cellSize+cellGap) - cellGap
	gridH := s.Height*(cellSize+cellGap) - cellGap

	lines := countLines(s)
	textW := 0
	for _, l := range lines {
		textW = max(textW, swatchSize+8+font.MeasureString(face, l.text).Ceil())
	}

	w := 2*sheetMargin + max(gridW, textW)
	h := 2*sheetMargin + gridH + sheetMargin + len(lines)*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	for z, row := range s.Labels {
		for x, l := range row {
			x0 := sheetMargin + x*(cellSize+cellGap)
			y0 := sheetMargin + z*(cellSize+cellGap)
			fill := rgba(s.Colors[l.ColorBucket])
			draw.Draw(img, image.Rect(x0, y0, x0+cellSize, y0+cellSize), image.NewUniform(fill), image.Point{}, draw.Src)

			fg := contrast(fill)
			drawCentered(img, face, fg, l.Piece(), x0+cellSize/2, y0+cellSize/2-2)
			drawCentered(img, face, fg, l.Direction(), x0+cellSize/2, y0+cellSize/2+12)
		}
	}

	y := sheetMargin + gridH + sheetMargin
	for _, l := range lines {
		if l.swatch != nil {
			sw := image.Rect(sheetMargin, y+2, sheetMargin+swatchSize, y+2+swatchSize)
			draw.Draw(img, sw, image.NewUniform(rgba(*l.swatch)), image.Point{}, draw.Src)
		}
		drawText(img, face, ink, l.text, sheetMargin+swatchSize+8, y+12)
		y += lineHeight
	}
	return img
}

// WritePNG encodes RenderSheet(s) as PNG.
func WritePNG(w io.Writer, s *Summary) error {
	return png.Encode(w, RenderSheet(s))
}

type sheetLine struct {
	swatch *layout.Color
	text   string
}

func countLines(s *Summary) []sheetLine {
	var out []sheetLine
	for i, n := range s.AngleCounts {
		out = append(out, sheetLine{text: fmt.Sprintf("%s  %.2f deg: %d", AngleLetter(i), s.Angles[i], n)})
	}
	for i, counts := range s.AngleColorCounts {
		for j, n := range counts {
			c := s.Colors[j]
			out = append(out, sheetLine{
				swatch: &c,
				text:   fmt.Sprintf("%s%s  %.2f deg %s: %d", AngleLetter(i), ColorOrdinal(j), s.Angles[i], c.Hex(), n),
			})
		}
	}
	return out
}

func drawText(dst draw.Image, face font.Face, c color.Color, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func drawCentered(dst draw.Image, face font.Face, c color.Color, s string, cx, baseline int) {
	w := font.MeasureString(face, s).Ceil()
	drawText(dst, face, c, s, cx-w/2, baseline)
}

func rgba(c layout.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 0xff}
}

// contrast picks black or white text for a background.
func contrast(bg color.RGBA) color.RGBA {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum > 140 {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}
