package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/youruser/cardapp/internal/cards"
	"github.com/youruser/cardapp/internal/style"
)

var jane = cards.ContactInfo{
	Name:     "Jane Doe",
	JobTitle: "Engineer",
	Phone:    "555-1234",
	Email:    "jane@x.com",
	Company:  "Acme",
}

func render(t *testing.T, info cards.ContactInfo, templateID, fontID string) (string, image.Image) {
	t.Helper()
	out, err := NewRenderer(nil, nil).Render(context.Background(), NewCardCanvas(), info, templateID, fontID)
	require.NoError(t, err)
	return out, decodeDataURL(t, out)
}

func decodeDataURL(t *testing.T, s string) image.Image {
	t.Helper()
	mime, b, err := ParseDataURL(s)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func rgbAt(img image.Image, x, y int) color.RGBA {
	r, g, b, _ := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

func hasColor(img image.Image, want color.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgbAt(img, x, y) == want {
				return true
			}
		}
	}
	return false
}

func uniform(img image.Image, want color.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgbAt(img, x, y) != want {
				return false
			}
		}
	}
	return true
}

func squareLogo(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return DataURL("image/png", buf.Bytes())
}

func TestRenderJaneDoe(t *testing.T) {
	out, img := render(t, jane, "template1", "font4")
	require.NotEmpty(t, out)
	require.Equal(t, image.Rect(0, 0, CardWidth, CardHeight), img.Bounds())

	bg := color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	accent := color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	require.Equal(t, bg, rgbAt(img, 5, 5))
	require.Equal(t, bg, rgbAt(img, CardWidth-5, CardHeight-5))

	// name sits on the 180 baseline starting at x=100
	require.True(t, hasColor(img, accent, image.Rect(100, 145, 400, 182)))
	require.True(t, uniform(img, bg, image.Rect(0, 130, 95, 190)))
	// job title in the text color, company in the accent color
	require.True(t, hasColor(img, white, image.Rect(100, 198, 400, 222)))
	require.True(t, hasColor(img, accent, image.Rect(100, 236, 400, 254)))

	// no logo drawn
	require.True(t, uniform(img, bg, image.Rect(880, 140, 1000, 260)))
	// only phone and email lines
	require.True(t, uniform(img, bg, image.Rect(90, 362, 700, 420)))
	require.False(t, uniform(img, bg, image.Rect(90, 300, 700, 320)))
	require.False(t, uniform(img, bg, image.Rect(90, 332, 700, 354)))
}

func TestRenderIsDeterministic(t *testing.T) {
	info := jane
	info.Address = "1 Infinite Loop"
	info.Logo = squareLogo(t, color.RGBA{R: 200, A: 255})

	a, _ := render(t, info, "template2", "font1")
	b, _ := render(t, info, "template2", "font1")
	require.Equal(t, a, b)
}

func TestOptionalFieldsTakeOneLineEach(t *testing.T) {
	bg := color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	line3 := image.Rect(90, 362, 700, 388)
	line4 := image.Rect(90, 392, 700, 420)
	header := image.Rect(0, 0, CardWidth, 290)

	_, none := render(t, jane, "template1", "font1")

	withAddr := jane
	withAddr.Address = "42 Wallaby Way"
	_, addr := render(t, withAddr, "template1", "font1")

	withSite := jane
	withSite.Website = "https://acme.example"
	_, site := render(t, withSite, "template1", "font1")

	both := withAddr
	both.Website = withSite.Website
	_, full := render(t, both, "template1", "font1")

	require.True(t, uniform(none, bg, line3))
	require.True(t, uniform(none, bg, line4))

	require.False(t, uniform(addr, bg, line3))
	require.True(t, uniform(addr, bg, line4))

	require.False(t, uniform(site, bg, line3))
	require.True(t, uniform(site, bg, line4))

	require.False(t, uniform(full, bg, line3))
	require.False(t, uniform(full, bg, line4))

	for _, img := range []image.Image{addr, site, full} {
		for y := header.Min.Y; y < header.Max.Y; y++ {
			for x := header.Min.X; x < header.Max.X; x++ {
				if rgbAt(img, x, y) != rgbAt(none, x, y) {
					t.Fatalf("header pixel (%d,%d) moved", x, y)
				}
			}
		}
	}
}

func TestLogoOnlyTouchesLogoRegion(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	withLogo := jane
	withLogo.Logo = squareLogo(t, red)

	_, plain := render(t, jane, "template1", "font1")
	_, logo := render(t, withLogo, "template1", "font1")

	// logo box is (890,150) 100x100, halo and shadow spill a little past it
	region := image.Rect(860, 120, 1020, 280)
	changed := false
	b := plain.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			same := rgbAt(plain, x, y) == rgbAt(logo, x, y)
			if image.Pt(x, y).In(region) {
				changed = changed || !same
				continue
			}
			if !same {
				t.Fatalf("pixel (%d,%d) outside the logo region changed", x, y)
			}
		}
	}
	require.True(t, changed)
	require.Equal(t, red, rgbAt(logo, 940, 200))
	// white halo ring between the logo circle and radius 54
	require.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, rgbAt(logo, 940, 147))
}

func TestLogoCoversCircle(t *testing.T) {
	// 200x100: blue left half, red right half
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := color.NRGBA{B: 0xff, A: 0xff}
			if x >= 100 {
				c = color.NRGBA{R: 0xff, A: 0xff}
			}
			src.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	info := jane
	info.Logo = DataURL("image/png", buf.Bytes())
	_, img := render(t, info, "template3", "font2")

	// covering fills the top of the circle, fitting would leave it white
	top := rgbAt(img, 925, 160)
	require.Greater(t, int(top.B), 200)
	require.Less(t, int(top.R), 60)
	right := rgbAt(img, 965, 200)
	require.Greater(t, int(right.R), 200)
	require.Less(t, int(right.B), 60)
}

func TestGradientBackground(t *testing.T) {
	_, img := render(t, jane, "template2", "font1")
	near := func(got, want color.RGBA) {
		t.Helper()
		for _, d := range []int{int(got.R) - int(want.R), int(got.G) - int(want.G), int(got.B) - int(want.B)} {
			require.LessOrEqual(t, d*d, 9, "got %v want %v", got, want)
		}
	}
	from, err := style.Hex("#667eea")
	require.NoError(t, err)
	to, err := style.Hex("#764ba2")
	require.NoError(t, err)
	near(rgbAt(img, 0, 0), from)
	near(rgbAt(img, CardWidth-1, CardHeight-1), to)
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRenderer(nil, nil)

	_, err := r.Render(ctx, &Canvas{}, jane, "", "")
	require.True(t, errors.Is(err, ErrDrawingContextUnavailable))

	_, err = r.Render(ctx, NewCardCanvas(), jane, "template9", "")
	require.True(t, errors.Is(err, style.ErrUnknownTemplate))

	_, err = r.Render(ctx, NewCardCanvas(), jane, "", "font9")
	require.True(t, errors.Is(err, style.ErrUnknownFont))

	bad := jane
	bad.Logo = DataURL("image/png", []byte("not an image"))
	_, err = r.Render(ctx, NewCardCanvas(), bad, "", "")
	require.True(t, errors.Is(err, ErrLogoLoad))

	bad.Logo = "ftp://example.com/logo.png"
	_, err = r.Render(ctx, NewCardCanvas(), bad, "", "")
	require.True(t, errors.Is(err, ErrLogoLoad))
}

func TestRenderHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer(nil, nil).Render(ctx, NewCardCanvas(), jane, "", "")
	require.True(t, errors.Is(err, context.Canceled))
}
