package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/cardapp/internal/cards"
	"github.com/youruser/cardapp/internal/style"
)

// Layout constants, in pixels.
const (
	marginX      = 100
	nameY        = 180
	nameSize     = 40
	titleSize    = 26
	companySize  = 22
	contactSize  = 18
	dividerRight = 200
	textIndent   = 28
	logoSize     = 100
	logoRight    = 60
)

// Renderer paints contact details onto a surface.
type Renderer struct {
	fonts *style.FontSet
	logos LogoLoader
}

// NewRenderer returns a renderer. Nil arguments select the embedded fonts
// and a default Loader.
func NewRenderer(fonts *style.FontSet, logos LogoLoader) *Renderer {
	if fonts == nil {
		fonts = style.NewFontSet("")
	}
	if logos == nil {
		logos = Loader{}
	}
	return &Renderer{fonts: fonts, logos: logos}
}

// Render draws the card and returns it as a PNG data URL.
func (r *Renderer) Render(ctx context.Context, s Surface, info cards.ContactInfo, templateID, fontID string) (string, error) {
	b, err := r.RenderPNG(ctx, s, info, templateID, fontID)
	if err != nil {
		return "", err
	}
	return DataURL("image/png", b), nil
}

// RenderPNG is Render without the data URL wrapping.
func (r *Renderer) RenderPNG(ctx context.Context, s Surface, info cards.ContactInfo, templateID, fontID string) ([]byte, error) {
	tpl, err := style.Template(templateID)
	if err != nil {
		return nil, err
	}
	fc, err := style.Font(fontID)
	if err != nil {
		return nil, err
	}
	pal, err := newPalette(tpl)
	if err != nil {
		return nil, err
	}
	dc, err := s.Context2D()
	if err != nil {
		return nil, err
	}

	var logo image.Image
	if info.Logo != "" {
		logo, err = r.logos.LoadLogo(ctx, info.Logo)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLogoLoad, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces, err := r.faces(fc)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	w, h := float64(dc.Width()), float64(dc.Height())

	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
	paintBackground(dc, pal, w, h)

	y := float64(nameY)
	logoY := y - logoSize/2 + nameSize/2

	dc.SetFontFace(faces.name)
	dc.SetColor(pal.accent)
	dc.DrawString(info.Name, marginX, y)

	y += 40
	dc.SetFontFace(faces.title)
	dc.SetColor(pal.text)
	dc.DrawString(info.JobTitle, marginX, y)

	y += 32
	dc.SetFontFace(faces.company)
	dc.SetColor(pal.accent)
	dc.DrawString(info.Company, marginX, y)

	y += 28
	dc.SetColor(pal.divider)
	dc.SetLineWidth(1.5)
	dc.DrawLine(marginX, y, w-dividerRight, y)
	dc.Stroke()

	// phone and email always hold their line, optional fields only when set
	dc.SetFontFace(faces.contact)
	y += 36
	drawContactLine(dc, pal, iconPhone, info.Phone, y)
	y += 32
	drawContactLine(dc, pal, iconEmail, info.Email, y)
	if info.Address != "" {
		y += 32
		drawContactLine(dc, pal, iconAddress, info.Address, y)
	}
	if info.Website != "" {
		y += 32
		drawContactLine(dc, pal, iconWebsite, info.Website, y)
	}

	if logo != nil {
		drawCircularLogo(dc, logo, w-logoSize-logoRight, logoY, logoSize)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

func paintBackground(dc *gg.Context, pal palette, w, h float64) {
	if pal.gradient != nil {
		g := gg.NewLinearGradient(0, 0, w, h)
		g.AddColorStop(0, pal.gradient[0])
		g.AddColorStop(1, pal.gradient[1])
		dc.SetFillStyle(g)
	} else {
		dc.SetColor(pal.background)
	}
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func drawContactLine(dc *gg.Context, pal palette, ic icon, text string, y float64) {
	if text == "" {
		return
	}
	drawIcon(dc, ic, marginX, y, pal.icon)
	dc.SetColor(pal.contact)
	dc.DrawString(text, marginX+textIndent, y)
}

type palette struct {
	background color.Color
	gradient   []color.Color
	text       color.Color
	accent     color.Color
	divider    color.Color
	icon       color.Color
	contact    color.Color
}

func newPalette(tpl style.TemplateStyle) (palette, error) {
	var p palette
	for _, c := range []struct {
		dst *color.Color
		hex string
	}{
		{&p.background, tpl.BackgroundColor},
		{&p.text, tpl.TextColor},
		{&p.accent, tpl.AccentColor},
		{&p.divider, tpl.DividerColor},
		{&p.icon, tpl.IconColor},
		{&p.contact, tpl.ContactColor},
	} {
		v, err := style.Hex(c.hex)
		if err != nil {
			return palette{}, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
		*c.dst = v
	}
	if tpl.Gradient != nil {
		from, err := style.Hex(tpl.Gradient.From)
		if err != nil {
			return palette{}, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
		to, err := style.Hex(tpl.Gradient.To)
		if err != nil {
			return palette{}, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
		p.gradient = []color.Color{from, to}
	}
	return p, nil
}

type faceSet struct {
	name, title, company, contact font.Face
}

func (r *Renderer) faces(fc style.FontConfig) (*faceSet, error) {
	fs := &faceSet{}
	var err error
	if fs.name, err = r.fonts.Face(fc.Family, style.WeightBold, nameSize); err != nil {
		return nil, err
	}
	if fs.title, err = r.fonts.Face(fc.Family, fc.Weight, titleSize); err != nil {
		fs.Close()
		return nil, err
	}
	if fs.company, err = r.fonts.Face(fc.Family, fc.Weight, companySize); err != nil {
		fs.Close()
		return nil, err
	}
	if fs.contact, err = r.fonts.Face(style.SansFamily, style.WeightRegular, contactSize); err != nil {
		fs.Close()
		return nil, err
	}
	return fs, nil
}

func (fs *faceSet) Close() {
	for _, f := range []font.Face{fs.name, fs.title, fs.company, fs.contact} {
		if f != nil {
			f.Close()
		}
	}
}
