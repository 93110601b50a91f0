// Package config parses command line flags and environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Logging configures the zap logger.
type Logging struct {
	Level  string `long:"level" env:"LEVEL" description:"Log level: debug, info, warn, error" default:"info"`
	Format string `long:"format" env:"FORMAT" description:"Log format: json or console" default:"json" choice:"json" choice:"console"`
}

// Render configures card rendering.
type Render struct {
	FontDir      string        `long:"font-dir" env:"FONT_DIR" description:"Directory searched for <Family>[-<Weight>].ttf font files"`
	LogoTimeout  time.Duration `long:"logo-timeout" env:"LOGO_TIMEOUT" description:"Timeout for fetching remote logos" default:"12s"`
	MaxLogoBytes int64         `long:"max-logo-bytes" env:"MAX_LOGO_BYTES" description:"Largest accepted logo file" default:"5242880"`
	PhoneRegion  string        `long:"phone-region" env:"PHONE_REGION" description:"Region used to parse phone numbers without a country code" default:"US"`

	MaxLogoDimension int  `long:"max-logo-dimension" env:"MAX_LOGO_DIMENSION" description:"Largest accepted logo width or height in pixels" default:"4096"`
	AllowRemoteLogos bool `long:"allow-remote-logos" env:"ALLOW_REMOTE_LOGOS" description:"Fetch http(s) logo URLs; only public addresses are dialed"`
}

// Server is the configuration of cmd/server.
type Server struct {
	Logging Logging `group:"Logging" namespace:"log" env-namespace:"LOG"`
	Render  Render  `group:"Render"`

	Port       string        `long:"port" env:"PORT" description:"HTTP listen port" default:"8080"`
	DataDir    string        `long:"data-dir" env:"DATA_DIR" description:"Directory holding persisted preferences" default:"data"`
	SessionTTL  time.Duration `long:"session-ttl" env:"SESSION_TTL" description:"Idle time after which an editing session is dropped" default:"30m"`
	MaxSessions int           `long:"max-sessions" env:"MAX_SESSIONS" description:"Editing sessions kept in memory; the least recently used is evicted beyond this" default:"1000"`
}

// PreferencesPath is the preference file inside DataDir.
func (s Server) PreferencesPath() string {
	return filepath.Join(s.DataDir, "preferences.yaml")
}

func (s Server) Validate() error {
	if s.SessionTTL <= 0 {
		return fmt.Errorf("session-ttl must be positive, got %s", s.SessionTTL)
	}
	if s.MaxSessions <= 0 {
		return fmt.Errorf("max-sessions must be positive, got %d", s.MaxSessions)
	}
	if s.Render.MaxLogoDimension <= 0 {
		return fmt.Errorf("max-logo-dimension must be positive, got %d", s.Render.MaxLogoDimension)
	}
	if s.Render.MaxLogoBytes <= 0 {
		return fmt.Errorf("max-logo-bytes must be positive, got %d", s.Render.MaxLogoBytes)
	}
	return nil
}

// Parse fills opts from args and the environment. Unknown flags are an
// error; --help returns a *flags.Error of type flags.ErrHelp.
func Parse(opts any, args []string) ([]string, error) {
	p := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	rest, err := p.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	if v, ok := opts.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return rest, nil
}

// IsHelp reports whether err is the help request from Parse.
func IsHelp(err error) bool {
	fe, ok := err.(*flags.Error)
	return ok && fe.Type == flags.ErrHelp
}
