package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/cardapp/internal/api"
	"github.com/youruser/cardapp/internal/config"
	"github.com/youruser/cardapp/internal/editor"
	"github.com/youruser/cardapp/internal/i18n"
	imagepkg "github.com/youruser/cardapp/internal/image"
	"github.com/youruser/cardapp/internal/logging"
	"github.com/youruser/cardapp/internal/prefs"
	"github.com/youruser/cardapp/internal/style"
)

func main() {
	var cfg config.Server
	if _, err := config.Parse(&cfg, os.Args[1:]); err != nil {
		if config.IsHelp(err) {
			fmt.Fprintln(os.Stdout, err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// A bad stored language is not fatal; the selection falls back to en.
	lang, err := i18n.NewSelection(prefs.NewFileStore(cfg.PreferencesPath()))
	if err != nil {
		logger.Warn("failed to load language preference", zap.Error(err))
	}

	renderer := newRenderer(cfg.Render, logger)
	sessions := api.NewSessions(cfg.SessionTTL, cfg.MaxSessions, func() *editor.Controller {
		return editor.New(renderer, editor.WithLogger(logger))
	})
	h := api.NewHandler(api.Options{
		Renderer:     renderer,
		Language:     lang,
		Sessions:     sessions,
		Logger:       logger,
		PhoneRegion:  cfg.Render.PhoneRegion,
		MaxLogoBytes: cfg.Render.MaxLogoBytes,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	api.RegisterRoutes(r, h)

	logger.Info("starting server",
		zap.String("addr", "http://localhost:"+cfg.Port),
		zap.String("language", lang.Current()),
	)
	if err := r.Run(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newRenderer builds the card renderer from the render flags.
func newRenderer(cfg config.Render, logger *zap.Logger) *imagepkg.Renderer {
	if cfg.FontDir == "" {
		logger.Warn("no font directory configured; using embedded Latin fonts, Chinese text will not render",
			zap.String("flag", "--font-dir"),
		)
	}
	if cfg.AllowRemoteLogos {
		logger.Info("remote logos enabled; only public addresses are fetched")
	}
	return imagepkg.NewRenderer(
		style.NewFontSet(cfg.FontDir),
		imagepkg.Loader{
			Timeout:      cfg.LogoTimeout,
			MaxBytes:     cfg.MaxLogoBytes,
			MaxDimension: cfg.MaxLogoDimension,
			AllowRemote:  cfg.AllowRemoteLogos,
		},
	)
}
