// Package export saves rendered cards as PNG files.
package export

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	imagepkg "github.com/youruser/cardapp/internal/image"
	"github.com/youruser/cardapp/internal/util"
)

const defaultName = "business-card"

var ErrInvalidImage = errors.New("not a png card image")

// Filename is the download name for a card: the contact name, or
// "business-card" when it is empty, with a .png extension.
func Filename(name string) string {
	if name == "" {
		name = defaultName
	}
	return name + ".png"
}

// Attach writes the card to the response as a PNG download.
func Attach(c *gin.Context, dataURL, name string) error {
	b, err := decode(dataURL)
	if err != nil {
		return err
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": Filename(name)})
	if disposition == "" {
		disposition = mime.FormatMediaType("attachment", map[string]string{"filename": Filename("")})
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "image/png", b)
	return nil
}

// WriteFile saves the card under dir and returns the written path. Path
// separators in the name are replaced so the file stays inside dir.
func WriteFile(dir, dataURL, name string) (string, error) {
	b, err := decode(dataURL)
	if err != nil {
		return "", err
	}
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, safeName(Filename(name)))
	if err := util.WriteFileAtomic(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func decode(dataURL string) ([]byte, error) {
	mt, b, err := imagepkg.ParseDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if mt != "image/png" {
		return nil, fmt.Errorf("%w: media type %s", ErrInvalidImage, mt)
	}
	return b, nil
}

var unsafeChars = strings.NewReplacer("/", "_", `\`, "_", "\x00", "_")

func safeName(name string) string {
	name = unsafeChars.Replace(name)
	if strings.HasPrefix(name, ".") {
		name = "_" + name
	}
	return name
}
