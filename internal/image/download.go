package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/youruser/cardapp/internal/util"
)

// DefaultMaxLogoDimension caps the width and height of a decoded logo.
const DefaultMaxLogoDimension = 4096

var (
	ErrLogoLoad = errors.New("logo load failed")
	// ErrRemoteLogosDisabled is returned for http(s) logos unless the
	// loader allows remote fetches.
	ErrRemoteLogosDisabled = errors.New("remote logos are disabled")
	ErrLogoTooLarge        = errors.New("logo too large")
)

// LogoLoader turns the logo field of a contact into pixels.
type LogoLoader interface {
	LoadLogo(ctx context.Context, src string) (image.Image, error)
}

// Loader decodes data URL logos and, when AllowRemote is set, downloads
// http(s) ones. The zero value accepts data URLs only.
type Loader struct {
	Timeout  time.Duration
	MaxBytes int64
	// MaxDimension bounds width and height before decoding. Zero means
	// DefaultMaxLogoDimension.
	MaxDimension int
	AllowRemote  bool
	// Client fetches remote logos. Nil means a client restricted to public
	// addresses.
	Client *http.Client
}

func (l Loader) LoadLogo(ctx context.Context, src string) (image.Image, error) {
	var data []byte
	switch {
	case strings.HasPrefix(src, "data:"):
		_, b, err := ParseDataURL(src)
		if err != nil {
			return nil, err
		}
		data = b
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		if !l.AllowRemote {
			return nil, ErrRemoteLogosDisabled
		}
		if l.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.Timeout)
			defer cancel()
		}
		client := l.Client
		if client == nil {
			client = util.NewPublicClient(l.Timeout)
		}
		b, err := util.GetBytes(ctx, client, src, l.MaxBytes)
		if err != nil {
			return nil, err
		}
		data = b
	default:
		return nil, fmt.Errorf("unsupported logo source %.16q", src)
	}
	if l.MaxBytes > 0 && int64(len(data)) > l.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrLogoTooLarge, len(data), l.MaxBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	limit := l.MaxDimension
	if limit <= 0 {
		limit = DefaultMaxLogoDimension
	}
	if cfg.Width > limit || cfg.Height > limit {
		return nil, fmt.Errorf("%w: %dx%d, limit %dx%d", ErrLogoTooLarge, cfg.Width, cfg.Height, limit, limit)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return img, nil
}
