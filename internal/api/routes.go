package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/qr", qrHandler)

		images := api.Group("/images")
		images.POST("/merge", h.mergeImages)
		images.POST("/addTxt", h.addText)
	}
}
