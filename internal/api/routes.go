package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/templates", h.templates)
		api.GET("/fonts", h.fonts)
		api.GET("/i18n", h.dictionary)
		api.GET("/i18n/:lang", h.dictionary)
		api.GET("/language", h.language)
		api.PUT("/language", h.switchLanguage)
		api.POST("/language/toggle", h.toggleLanguage)
		api.POST("/render", h.render)
	}
	card := api.Group("/card", h.withSession)
	{
		card.GET("", h.card)
		card.PUT("/info", h.updateInfo)
		card.PATCH("/fields/:field", h.setField)
		card.PUT("/template", h.selectTemplate)
		card.PUT("/font", h.selectFont)
		card.POST("/logo", h.uploadLogo)
		card.GET("/preview", h.preview)
		card.GET("/download", h.download)
		card.GET("/qr", h.qr)
	}
}
