package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/cardapp/internal/config"
)

func writeLogo(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.NRGBA{B: 0xff, A: 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func baseOptions(out string) options {
	return options{
		Render:   config.Render{MaxLogoBytes: 1 << 20},
		Out:      out,
		Template: "template1",
		Font:     "font1",
	}
}

func TestRunCSVBatch(t *testing.T) {
	dir := t.TempDir()
	writeLogo(t, filepath.Join(dir, "acme.png"))
	csv := "name,job_title,phone,email,company,logo\n" +
		"Jane Doe,Engineer,555-1234,jane@x.com,Acme,acme.png\n" +
		"Jane Doe,Manager,555-9999,jd@x.com,Acme Labs,\n" +
		"Bob,Sales,,bob@y.com,Other,\n" +
		"Eve,Ops,,eve@x.com,Acme,missing.png\n" +
		",,,,,\n"
	csvPath := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	opts := baseOptions(filepath.Join(dir, "out"))
	opts.CSV = csvPath
	opts.Company = []string{"acme"}

	written, err := run(context.Background(), opts, zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Eve")
	require.Equal(t, []string{
		filepath.Join(dir, "out", "Jane Doe.png"),
		filepath.Join(dir, "out", "Jane Doe-2.png"),
	}, written)

	for _, p := range written {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(b))
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 1050, 600), img.Bounds())
	}
	_, err = os.Stat(filepath.Join(dir, "out", "Bob.png"))
	require.True(t, os.IsNotExist(err))
}

func TestRunSingleCard(t *testing.T) {
	out := t.TempDir()
	opts := baseOptions(out)
	opts.Template = "template2"
	opts.Contact.Company = "Acme"

	written, err := run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(out, "business-card.png")}, written)
}

func TestRunNothingToRender(t *testing.T) {
	_, err := run(context.Background(), baseOptions(t.TempDir()), zap.NewNop())
	require.Error(t, err)
}

func TestOptionsValidate(t *testing.T) {
	var opts options
	_, err := config.Parse(&opts, []string{"--template", "template4"})
	require.Error(t, err)

	opts = options{}
	rest, err := config.Parse(&opts, []string{"--name", "Jane", "--company", "acme", "--company", "globex"})
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, "Jane", opts.Contact.Name)
	require.Equal(t, []string{"acme", "globex"}, opts.Company)
	require.Equal(t, "cards", opts.Out)
}

func TestUniqueNameSkipsTakenNames(t *testing.T) {
	used := map[string]bool{}
	var got []string
	for _, n := range []string{"Bob", "Bob", "Bob-2", "", ""} {
		got = append(got, uniqueName(used, n))
	}
	require.Equal(t, []string{"Bob", "Bob-2", "Bob-2-2", "business-card", "business-card-2"}, got)
}

func TestRunRequireLogo(t *testing.T) {
	dir := t.TempDir()
	writeLogo(t, filepath.Join(dir, "acme.png"))
	csv := "name,company,logo\n" +
		"Jane,Acme,acme.png\n" +
		"Bob,Acme,\n"
	csvPath := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	opts := baseOptions(filepath.Join(dir, "out"))
	opts.CSV = csvPath
	opts.RequireLogo = true

	written, err := run(context.Background(), opts, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "out", "Jane.png")}, written)
}
