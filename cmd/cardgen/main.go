// Command cardgen renders business cards to PNG files, either one card from
// flags or every matching row of a CSV file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/youruser/cardapp/internal/cards"
	"github.com/youruser/cardapp/internal/config"
	"github.com/youruser/cardapp/internal/export"
	imagepkg "github.com/youruser/cardapp/internal/image"
	"github.com/youruser/cardapp/internal/logging"
	"github.com/youruser/cardapp/internal/style"
)

type options struct {
	Logging config.Logging `group:"Logging" namespace:"log" env-namespace:"LOG"`
	Render  config.Render  `group:"Render"`

	CSV      string   `long:"csv" description:"CSV file with one contact per row"`
	Out      string   `long:"out" short:"o" description:"Output directory" default:"cards"`
	Template string   `long:"template" description:"Template id" default:"template1"`
	Font     string   `long:"font" description:"Font id" default:"font1"`
	Company  []string `long:"company" description:"Only render rows whose company contains this text (repeatable)"`
	Match    string   `long:"match" description:"Only render rows matching all of these words"`
	// RequireLogo skips rows without a logo.
	RequireLogo bool `long:"require-logo" description:"Only render rows that have a logo"`

	Contact struct {
		Name     string `long:"name" description:"Name"`
		JobTitle string `long:"job-title" description:"Job title"`
		Phone    string `long:"phone" description:"Phone"`
		Email    string `long:"email" description:"Email"`
		Company  string `long:"company-name" description:"Company"`
		Address  string `long:"address" description:"Address"`
		Website  string `long:"website" description:"Website"`
		Logo     string `long:"logo" description:"Logo file, data URL or http(s) URL"`
	} `group:"Single card"`
}

func (o *options) Validate() error {
	if _, err := style.Template(o.Template); err != nil {
		return err
	}
	if _, err := style.Font(o.Font); err != nil {
		return err
	}
	return nil
}

func main() {
	var opts options
	if _, err := config.Parse(&opts, os.Args[1:]); err != nil {
		if config.IsHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := logging.New(opts.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	written, err := run(context.Background(), opts, logger)
	for _, p := range written {
		fmt.Fprintln(os.Stdout, p)
	}
	if err != nil {
		logger.Error("card generation failed", zap.Error(err))
		os.Exit(1)
	}
}

// run renders the selected contacts and returns the written files. Failed
// rows do not stop the batch; their errors are combined.
func run(ctx context.Context, opts options, logger *zap.Logger) ([]string, error) {
	contacts, baseDir, err := selectContacts(opts)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, errors.New("no contacts to render")
	}

	renderer := imagepkg.NewRenderer(
		style.NewFontSet(opts.Render.FontDir),
		imagepkg.Loader{
			Timeout:      opts.Render.LogoTimeout,
			MaxBytes:     opts.Render.MaxLogoBytes,
			MaxDimension: opts.Render.MaxLogoDimension,
			AllowRemote:  opts.Render.AllowRemoteLogos,
		},
	)

	var (
		result  *multierror.Error
		written []string
		used    = map[string]bool{}
	)
	for i, c := range contacts {
		if c.Logo, err = resolveLogo(c.Logo, baseDir); err != nil {
			result = multierror.Append(result, fmt.Errorf("contact %d (%s): %w", i+1, c.Name, err))
			continue
		}
		card, err := renderer.Render(ctx, imagepkg.NewCardCanvas(), c, opts.Template, opts.Font)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("contact %d (%s): %w", i+1, c.Name, err))
			continue
		}
		path, err := export.WriteFile(opts.Out, card, uniqueName(used, c.Name))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("contact %d (%s): %w", i+1, c.Name, err))
			continue
		}
		logger.Debug("card written", zap.String("path", path))
		written = append(written, path)
	}
	logger.Info("cards rendered",
		zap.Int("written", len(written)),
		zap.Int("failed", len(contacts)-len(written)),
		zap.String("out", opts.Out),
	)
	return written, result.ErrorOrNil()
}

func selectContacts(opts options) ([]cards.ContactInfo, string, error) {
	if opts.CSV == "" {
		c := opts.Contact
		info := cards.ContactInfo{
			Name:     c.Name,
			JobTitle: c.JobTitle,
			Phone:    c.Phone,
			Email:    c.Email,
			Company:  c.Company,
			Address:  c.Address,
			Website:  c.Website,
			Logo:     c.Logo,
		}
		if !info.Renderable() {
			return nil, "", errors.New("either --csv or at least one of --name, --job-title, --phone, --email, --company-name is required")
		}
		return []cards.ContactInfo{info}, ".", nil
	}
	all, err := cards.LoadContactsCSV(opts.CSV)
	if err != nil {
		return nil, "", err
	}
	return cards.Filter(all, cards.FilterOptions{
		Companies:   opts.Company,
		FreeWords:   opts.Match,
		RequireLogo: opts.RequireLogo,
	}), filepath.Dir(opts.CSV), nil
}

// resolveLogo turns a local file reference into a data URL. Data URLs and
// http(s) URLs are left for the renderer.
func resolveLogo(logo, baseDir string) (string, error) {
	if logo == "" || strings.HasPrefix(logo, "data:") ||
		strings.HasPrefix(logo, "http://") || strings.HasPrefix(logo, "https://") {
		return logo, nil
	}
	path := logo
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()
	return imagepkg.EncodeDataURL(f, "")
}

// uniqueName keeps cards for people sharing a name from overwriting each
// other. Suffixes skip names already taken, including ones that came
// from the input itself.
func uniqueName(used map[string]bool, name string) string {
	if name == "" {
		name = strings.TrimSuffix(export.Filename(""), ".png")
	}
	candidate := name
	for n := 2; used[export.Filename(candidate)]; n++ {
		candidate = name + "-" + strconv.Itoa(n)
	}
	used[export.Filename(candidate)] = true
	return candidate
}
