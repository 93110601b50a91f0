package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SansFamily names the generic face used for the contact block.
const SansFamily = "sans-serif"

// FontSet resolves font families to faces. Font files are looked up in dir
// as "<Family>-<Weight>.ttf" then "<Family>.ttf" (spaces may be dropped,
// .otf is accepted). Families without a file fall back to the embedded Go
// fonts of the matching weight.
//
// A FontSet is safe for concurrent use. The faces it returns are not, so
// callers create them per render.
type FontSet struct {
	dir string

	mu     sync.Mutex
	parsed map[string]*opentype.Font
}

func NewFontSet(dir string) *FontSet {
	return &FontSet{dir: dir, parsed: map[string]*opentype.Font{}}
}

// Face returns a face for family at weight and size in pixels.
func (fs *FontSet) Face(family string, weight Weight, size float64) (font.Face, error) {
	f, err := fs.font(family, weight)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s %s face at %.0fpx: %w", family, weight, size, err)
	}
	return face, nil
}

func (fs *FontSet) font(family string, weight Weight) (*opentype.Font, error) {
	key := family + "|" + string(weight)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f, ok := fs.parsed[key]; ok {
		return f, nil
	}

	data, err := fs.load(family, weight)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", family, err)
	}
	fs.parsed[key] = f
	return f, nil
}

func (fs *FontSet) load(family string, weight Weight) ([]byte, error) {
	if fs.dir != "" {
		for _, name := range candidateFiles(family, weight) {
			data, err := os.ReadFile(filepath.Join(fs.dir, name))
			if err == nil {
				return data, nil
			}
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read font %s: %w", name, err)
			}
		}
	}
	return embedded(weight), nil
}

func candidateFiles(family string, weight Weight) []string {
	bases := []string{family}
	if compact := strings.ReplaceAll(family, " ", ""); compact != family {
		bases = append(bases, compact)
	}
	var out []string
	for _, suffix := range []string{"-" + weightName(weight), ""} {
		for _, b := range bases {
			for _, ext := range []string{".ttf", ".otf"} {
				out = append(out, b+suffix+ext)
			}
		}
	}
	return out
}

func weightName(w Weight) string {
	switch w {
	case WeightBold:
		return "Bold"
	case WeightMedium:
		return "Medium"
	default:
		return "Regular"
	}
}

func embedded(w Weight) []byte {
	switch w {
	case WeightBold:
		return gobold.TTF
	case WeightMedium:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}
