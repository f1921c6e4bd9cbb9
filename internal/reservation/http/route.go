package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reservations")

	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/conflicts", h.CheckConflicts)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.DELETE("/:id", h.Cancel)
	}
}
