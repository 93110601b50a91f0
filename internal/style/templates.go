// Package style holds the fixed template and font catalogs a card can be
// rendered with.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownFont     = errors.New("unknown font")
)

const (
	DefaultTemplateID = "template1"
	DefaultFontID     = "font1"
)

// Gradient is a two stop linear gradient painted from the top-left corner
// to the bottom-right corner of the card.
type Gradient struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TemplateStyle is one entry of the template catalog. Colors are #rrggbb.
type TemplateStyle struct {
	ID              string    `json:"id"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	AccentColor     string    `json:"accentColor"`
	Gradient        *Gradient `json:"gradient,omitempty"`

	DividerColor string `json:"dividerColor"`
	IconColor    string `json:"iconColor"`
	ContactColor string `json:"contactColor"`
}

var templates = []TemplateStyle{
	{
		ID:              "template1",
		BackgroundColor: "#1e293b",
		TextColor:       "#ffffff",
		AccentColor:     "#3b82f6",
		DividerColor:    "#e5e7eb",
		IconColor:       "#b6bbc6",
		ContactColor:    "#f1f5f9",
	},
	{
		ID:              "template2",
		BackgroundColor: "#667eea",
		TextColor:       "#ffffff",
		AccentColor:     "#fbbf24",
		// stops are fixed, BackgroundColor is only a flat fallback
		Gradient:     &Gradient{From: "#667eea", To: "#764ba2"},
		DividerColor: "#e5e7eb",
		IconColor:    "#b6bbc6",
		ContactColor: "#f1f5f9",
	},
	{
		ID:              "template3",
		BackgroundColor: "#f8fafc",
		TextColor:       "#1e293b",
		AccentColor:     "#d97706",
		DividerColor:    "#e5e7eb",
		IconColor:       "#64748b",
		ContactColor:    "#334155",
	},
}

// Weight is a CSS-style font weight.
type Weight string

const (
	WeightRegular Weight = "400"
	WeightMedium  Weight = "500"
	WeightBold    Weight = "bold"
)

// FontConfig is one entry of the font catalog.
type FontConfig struct {
	ID     string `json:"id"`
	Family string `json:"family"`
	Weight Weight `json:"weight"`
}

var fonts = []FontConfig{
	{ID: "font1", Family: "Source Han Sans CN", Weight: WeightMedium},
	{ID: "font2", Family: "Microsoft YaHei", Weight: WeightMedium},
	{ID: "font3", Family: "PingFang SC", Weight: WeightMedium},
	{ID: "font4", Family: "Arial", Weight: WeightMedium},
	{ID: "font5", Family: "Helvetica", Weight: WeightMedium},
	{ID: "font6", Family: "Georgia", Weight: WeightMedium},
}

// Templates returns the template catalog in display order.
func Templates() []TemplateStyle {
	return append([]TemplateStyle(nil), templates...)
}

// Fonts returns the font catalog in display order.
func Fonts() []FontConfig {
	return append([]FontConfig(nil), fonts...)
}

// Template looks up a template by id. The empty id selects the default.
func Template(id string) (TemplateStyle, error) {
	if id == "" {
		id = DefaultTemplateID
	}
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return TemplateStyle{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}

// Font looks up a font by id. The empty id selects the default.
func Font(id string) (FontConfig, error) {
	if id == "" {
		id = DefaultFontID
	}
	for _, f := range fonts {
		if f.ID == id {
			return f, nil
		}
	}
	return FontConfig{}, fmt.Errorf("%w: %q", ErrUnknownFont, id)
}

// Hex parses #rgb or #rrggbb into an opaque color.
func Hex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
