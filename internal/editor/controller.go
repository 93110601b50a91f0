// Package editor holds the card being edited and keeps its rendered image
// in step with every change.
package editor

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/youruser/cardapp/internal/cards"
	imagepkg "github.com/youruser/cardapp/internal/image"
	"github.com/youruser/cardapp/internal/style"
)

// Renderer draws a card onto a surface and returns it as a data URL.
type Renderer interface {
	Render(ctx context.Context, s imagepkg.Surface, info cards.ContactInfo, templateID, fontID string) (string, error)
}

// State is a snapshot of the edited card. Generation increases on every
// change.
type State struct {
	Info       cards.ContactInfo `json:"info"`
	TemplateID string            `json:"template"`
	FontID     string            `json:"font"`
	Generation uint64            `json:"generation"`
}

// Result describes what a change did to the rendered card.
type Result struct {
	Generation uint64
	// Rendered is false when the form had nothing to render.
	Rendered bool
	// Stale is set when a newer change finished first; Card is then empty
	// and the cached card was left alone.
	Stale bool
	Card  string
	Err   error
}

// Committed reports whether the result replaced the cached card.
func (r Result) Committed() bool {
	return r.Rendered && !r.Stale && r.Err == nil
}

// Controller owns one card. Changes may arrive concurrently; a render only
// commits when no newer change has been made since it started.
type Controller struct {
	renderer   Renderer
	newSurface func() imagepkg.Surface
	logger     *zap.Logger

	mu        sync.Mutex
	state     State
	card      string
	listeners []func(Result)
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSurface overrides the surface factory used for each render.
func WithSurface(f func() imagepkg.Surface) Option {
	return func(c *Controller) {
		c.newSurface = f
	}
}

func New(r Renderer, opts ...Option) *Controller {
	c := &Controller{
		renderer:   r,
		newSurface: func() imagepkg.Surface { return imagepkg.NewCardCanvas() },
		logger:     zap.NewNop(),
		state: State{
			TemplateID: style.DefaultTemplateID,
			FontID:     style.DefaultFontID,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OnRender registers fn to be called after each committed render.
func (c *Controller) OnRender(fn func(Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Card returns the last committed card, if any.
func (c *Controller) Card() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.card, c.card != ""
}

// Update replaces the whole contact record.
func (c *Controller) Update(ctx context.Context, info cards.ContactInfo) Result {
	res, _ := c.mutate(ctx, func(s *State) error {
		s.Info = info
		return nil
	})
	return res
}

// SetField replaces a single contact field.
func (c *Controller) SetField(ctx context.Context, field, value string) (Result, error) {
	return c.mutate(ctx, func(s *State) error {
		info, err := s.Info.With(field, value)
		if err != nil {
			return err
		}
		s.Info = info
		return nil
	})
}

// UploadLogo reads an image file into the logo field. The field keeps its
// old value when the file cannot be read.
func (c *Controller) UploadLogo(ctx context.Context, r io.Reader, mimeHint string) (Result, error) {
	logo, err := imagepkg.EncodeDataURL(r, mimeHint)
	if err != nil {
		c.logger.Warn("logo upload failed", zap.Error(err))
		return Result{}, err
	}
	return c.SetField(ctx, "logo", logo)
}

func (c *Controller) SelectTemplate(ctx context.Context, id string) (Result, error) {
	tpl, err := style.Template(id)
	if err != nil {
		return Result{}, err
	}
	return c.mutate(ctx, func(s *State) error {
		s.TemplateID = tpl.ID
		return nil
	})
}

func (c *Controller) SelectFont(ctx context.Context, id string) (Result, error) {
	f, err := style.Font(id)
	if err != nil {
		return Result{}, err
	}
	return c.mutate(ctx, func(s *State) error {
		s.FontID = f.ID
		return nil
	})
}

func (c *Controller) mutate(ctx context.Context, apply func(*State) error) (Result, error) {
	c.mu.Lock()
	next := c.state
	if err := apply(&next); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	next.Generation++
	c.state = next
	c.mu.Unlock()

	return c.render(ctx, next), nil
}

func (c *Controller) render(ctx context.Context, st State) Result {
	res := Result{Generation: st.Generation}
	if !st.Info.Renderable() {
		return res
	}
	res.Rendered = true

	card, err := c.renderer.Render(ctx, c.newSurface(), st.Info, st.TemplateID, st.FontID)
	if err != nil {
		c.logger.Warn("render card failed",
			zap.Uint64("generation", st.Generation),
			zap.String("template", st.TemplateID),
			zap.String("font", st.FontID),
			zap.Error(err),
		)
		res.Err = err
		return res
	}

	c.mu.Lock()
	if st.Generation != c.state.Generation {
		latest := c.state.Generation
		c.mu.Unlock()
		c.logger.Debug("dropping stale render",
			zap.Uint64("generation", st.Generation),
			zap.Uint64("latest", latest),
		)
		res.Stale = true
		return res
	}
	c.card = card
	listeners := append([]func(Result){}, c.listeners...)
	c.mu.Unlock()

	res.Card = card
	for _, fn := range listeners {
		fn(res)
	}
	return res
}
