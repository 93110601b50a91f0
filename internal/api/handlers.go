package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/cardapp/internal/cards"
	"github.com/youruser/cardapp/internal/editor"
	"github.com/youruser/cardapp/internal/export"
	"github.com/youruser/cardapp/internal/i18n"
	imagepkg "github.com/youruser/cardapp/internal/image"
	"github.com/youruser/cardapp/internal/style"
	"github.com/youruser/cardapp/internal/vcard"
)

// Handler serves the card editing API.
type Handler struct {
	renderer     *imagepkg.Renderer
	lang         *i18n.Selection
	sessions     *Sessions
	logger       *zap.Logger
	phoneRegion  string
	maxLogoBytes int64
}

type Options struct {
	Renderer     *imagepkg.Renderer
	Language     *i18n.Selection
	Sessions     *Sessions
	Logger       *zap.Logger
	PhoneRegion  string
	MaxLogoBytes int64
}

func NewHandler(o Options) *Handler {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Handler{
		renderer:     o.Renderer,
		lang:         o.Language,
		sessions:     o.Sessions,
		logger:       o.Logger,
		phoneRegion:  o.PhoneRegion,
		maxLogoBytes: o.MaxLogoBytes,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) templates(c *gin.Context) {
	dict := h.lang.Dictionary()
	out := []gin.H{}
	for _, t := range style.Templates() {
		out = append(out, gin.H{"id": t.ID, "label": dict.T(t.ID), "style": t})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out, "default": style.DefaultTemplateID})
}

func (h *Handler) fonts(c *gin.Context) {
	dict := h.lang.Dictionary()
	out := []gin.H{}
	for _, f := range style.Fonts() {
		out = append(out, gin.H{"id": f.ID, "label": dict.T(f.ID), "family": f.Family, "weight": f.Weight})
	}
	c.JSON(http.StatusOK, gin.H{"fonts": out, "default": style.DefaultFontID})
}

// dictionary serves the current language, or the one named in the path.
func (h *Handler) dictionary(c *gin.Context) {
	lang := h.lang.Current()
	if p := c.Param("lang"); p != "" {
		lang = i18n.Fallback
		if l, err := i18n.Normalize(p); err == nil {
			lang = l
		}
	}
	c.JSON(http.StatusOK, gin.H{"language": lang, "dictionary": i18n.Get(lang)})
}

func (h *Handler) language(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"language": h.lang.Current(), "supported": i18n.Supported()})
}

func (h *Handler) switchLanguage(c *gin.Context) {
	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lang, err := h.lang.Switch(req.Language)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("language switched", zap.String("language", lang))
	c.JSON(http.StatusOK, gin.H{"language": lang, "dictionary": i18n.Get(lang)})
}

// toggleLanguage flips between zh and en, like the header switcher.
func (h *Handler) toggleLanguage(c *gin.Context) {
	lang, err := h.lang.Toggle()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("language switched", zap.String("language", lang))
	c.JSON(http.StatusOK, gin.H{"language": lang, "dictionary": i18n.Get(lang)})
}

// render is a stateless render of a posted card.
func (h *Handler) render(c *gin.Context) {
	var req struct {
		Info     cards.ContactInfo `json:"info"`
		Template string            `json:"template"`
		Font     string            `json:"font"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Info.Renderable() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to render: name, job title, phone, email and company are all empty"})
		return
	}
	b, err := h.renderer.RenderPNG(c.Request.Context(), imagepkg.NewCardCanvas(), req.Info, req.Template, req.Font)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("format") == "dataurl" {
		c.JSON(http.StatusOK, gin.H{"image": imagepkg.DataURL("image/png", b), "filename": export.Filename(req.Info.Name)})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) card(c *gin.Context) {
	ctrl := editorFrom(c)
	_, ok := ctrl.Card()
	c.JSON(http.StatusOK, gin.H{"state": ctrl.State(), "hasCard": ok})
}

func (h *Handler) updateInfo(c *gin.Context) {
	var info cards.ContactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := editorFrom(c)
	h.respond(c, ctrl, ctrl.Update(c.Request.Context(), info), nil)
}

func (h *Handler) setField(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := editorFrom(c)
	res, err := ctrl.SetField(c.Request.Context(), c.Param("field"), req.Value)
	h.respond(c, ctrl, res, err)
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) selectTemplate(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := editorFrom(c)
	res, err := ctrl.SelectTemplate(c.Request.Context(), req.ID)
	h.respond(c, ctrl, res, err)
}

func (h *Handler) selectFont(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := editorFrom(c)
	res, err := ctrl.SelectFont(c.Request.Context(), req.ID)
	h.respond(c, ctrl, res, err)
}

func (h *Handler) uploadLogo(c *gin.Context) {
	if h.maxLogoBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxLogoBytes+1<<10)
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	if h.maxLogoBytes > 0 && fh.Size > h.maxLogoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo exceeds " + strconv.FormatInt(h.maxLogoBytes, 10) + " bytes"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer f.Close()

	ctrl := editorFrom(c)
	res, err := ctrl.UploadLogo(c.Request.Context(), f, fh.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respond(c, ctrl, res, nil)
}

func (h *Handler) preview(c *gin.Context) {
	card, ok := editorFrom(c).Card()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no card rendered yet"})
		return
	}
	_, b, err := imagepkg.ParseDataURL(card)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) download(c *gin.Context) {
	ctrl := editorFrom(c)
	card, ok := ctrl.Card()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no card rendered yet"})
		return
	}
	if err := export.Attach(c, card, ctrl.State().Info.Name); err != nil {
		h.fail(c, err)
	}
}

func (h *Handler) qr(c *gin.Context) {
	info := editorFrom(c).State().Info
	if !info.Renderable() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no contact details yet"})
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(vcard.FromContact(info, h.phoneRegion).Encode(), size)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// respond reports the outcome of an editor change.
func (h *Handler) respond(c *gin.Context, ctrl *editor.Controller, res editor.Result, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	body := gin.H{
		"state":    ctrl.State(),
		"rendered": res.Rendered,
		"stale":    res.Stale,
	}
	if res.Committed() {
		body["image"] = res.Card
	}
	if res.Err != nil {
		body["error"] = res.Err.Error()
		c.Error(res.Err)
		c.JSON(statusFor(res.Err), body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, style.ErrUnknownTemplate),
		errors.Is(err, style.ErrUnknownFont),
		errors.Is(err, cards.ErrUnknownField),
		errors.Is(err, i18n.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, imagepkg.ErrLogoLoad),
		errors.Is(err, imagepkg.ErrInvalidDataURL):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
