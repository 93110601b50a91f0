package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	logoHalo   = 4
	shadowBlur = 12
)

var shadowColor = color.NRGBA{A: 46} // rgba(0,0,0,0.18)

// drawCircularLogo paints a shadowed white disc and the logo clipped to a
// circle inside the size×size box at (x, y). The logo is scaled to cover
// the box and center-cropped.
func drawCircularLogo(dc *gg.Context, logo image.Image, x, y, size float64) {
	cx, cy := x+size/2, y+size/2
	drawShadowedDisc(dc, cx, cy, size/2+logoHalo)

	n := int(size)
	cover := imaging.Fill(logo, n, n, imaging.Center, imaging.Lanczos)

	dc.DrawCircle(cx, cy, size/2)
	dc.Clip()
	dc.DrawImage(cover, int(x), int(y))
	dc.ResetClip()
}

// drawShadowedDisc approximates a canvas shadowBlur with a gaussian of
// sigma blur/2 on an offscreen layer.
func drawShadowedDisc(dc *gg.Context, cx, cy, r float64) {
	pad := shadowBlur * 1.5
	n := int(math.Ceil(2 * (r + pad)))
	c := float64(n) / 2

	layer := gg.NewContext(n, n)
	layer.DrawCircle(c, c, r)
	layer.SetColor(shadowColor)
	layer.Fill()
	shadow := imaging.Blur(layer.Image(), shadowBlur/2)
	dc.DrawImage(shadow, int(math.Round(cx-c)), int(math.Round(cy-c)))

	dc.DrawCircle(cx, cy, r)
	dc.SetColor(color.White)
	dc.Fill()
}
