package imagepkg

import (
	"image/color"

	"github.com/fogleman/gg"
)

type icon int

const (
	iconPhone icon = iota
	iconEmail
	iconAddress
	iconWebsite
)

// drawIcon strokes an 18px line glyph whose baseline sits at y.
func drawIcon(dc *gg.Context, ic icon, x, y float64, c color.Color) {
	dc.Push()
	defer dc.Pop()

	dc.SetColor(c)
	dc.SetLineWidth(1.5)
	switch ic {
	case iconPhone:
		dc.DrawRoundedRectangle(x+4, y-15, 10, 17, 2)
		dc.Stroke()
		dc.DrawLine(x+7.5, y-12.5, x+10.5, y-12.5)
		dc.Stroke()
		dc.DrawCircle(x+9, y-1, 0.9)
		dc.Fill()
	case iconEmail:
		dc.DrawRectangle(x+1, y-13, 16, 11)
		dc.Stroke()
		dc.MoveTo(x+1, y-13)
		dc.LineTo(x+9, y-7)
		dc.LineTo(x+17, y-13)
		dc.Stroke()
	case iconAddress:
		dc.DrawCircle(x+9, y-10, 5)
		dc.Stroke()
		dc.MoveTo(x+5.5, y-6.5)
		dc.LineTo(x+9, y+2)
		dc.LineTo(x+12.5, y-6.5)
		dc.Stroke()
	case iconWebsite:
		dc.DrawCircle(x+9, y-6, 8)
		dc.Stroke()
		dc.DrawEllipse(x+9, y-6, 3.5, 8)
		dc.Stroke()
		dc.DrawLine(x+1, y-6, x+17, y-6)
		dc.Stroke()
	}
}
