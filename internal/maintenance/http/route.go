package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/maintenance")

	group.Use(authMiddleware)
	{
		group.GET("/requests", h.List)
		group.GET("/requests/:id", h.Get)
		group.POST("/requests", h.Create)
		group.POST("/requests/:id/photos", h.UploadPhoto)
		group.PATCH("/requests/:id/status", adminMiddleware, h.UpdateStatus)

		group.GET("/photos/:photoID", h.ServePhoto)
		group.GET("/photos/:photoID/thumbnail", h.ServeThumbnail)
	}
}
