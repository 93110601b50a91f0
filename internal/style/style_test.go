package style

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestCatalogs(t *testing.T) {
	require.Len(t, Templates(), 3)
	require.Len(t, Fonts(), 6)

	tpl, err := Template("")
	require.NoError(t, err)
	require.Equal(t, "template1", tpl.ID)
	require.Nil(t, tpl.Gradient)

	tpl, err = Template("template2")
	require.NoError(t, err)
	require.Equal(t, &Gradient{From: "#667eea", To: "#764ba2"}, tpl.Gradient)

	f, err := Font("font4")
	require.NoError(t, err)
	require.Equal(t, FontConfig{ID: "font4", Family: "Arial", Weight: WeightMedium}, f)

	_, err = Template("template9")
	require.True(t, errors.Is(err, ErrUnknownTemplate))
	_, err = Font("comic")
	require.True(t, errors.Is(err, ErrUnknownFont))
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	ts := Templates()
	ts[0].AccentColor = "#000000"
	tpl, _ := Template("template1")
	require.Equal(t, "#3b82f6", tpl.AccentColor)
}

func TestHex(t *testing.T) {
	c, err := Hex("#1e293b")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}, c)

	c, err = Hex("fff")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = Hex("#12345")
	require.Error(t, err)
	_, err = Hex("#zzzzzz")
	require.Error(t, err)
}

func TestFontSetFallsBackToEmbedded(t *testing.T) {
	fs := NewFontSet("")
	face, err := fs.Face("Arial", WeightBold, 40)
	require.NoError(t, err)
	defer face.Close()
	require.Greater(t, face.Metrics().Height.Ceil(), 0)
	require.Len(t, fs.parsed, 1)

	// cached on second lookup
	_, err = fs.Face("Arial", WeightBold, 20)
	require.NoError(t, err)
	require.Len(t, fs.parsed, 1)
}

func TestFontSetReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	// a bold face registered under the regular name proves the file wins
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PingFangSC.ttf"), gobold.TTF, 0o644))

	fs := NewFontSet(dir)
	data, err := fs.load("PingFang SC", WeightRegular)
	require.NoError(t, err)
	require.Equal(t, gobold.TTF, data)

	data, err = fs.load("Georgia", WeightRegular)
	require.NoError(t, err)
	require.Equal(t, goregular.TTF, data)
}

func TestFontSetRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Arial-Medium.ttf"), []byte("not a font"), 0o644))
	_, err := NewFontSet(dir).Face("Arial", WeightMedium, 12)
	require.Error(t, err)
}
