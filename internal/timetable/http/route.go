package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/timetable")

	group.Use(authMiddleware)
	{
		group.GET("/me", h.MyTimetable)
		group.GET("/schedule", h.MySchedule)

		group.GET("/classes", h.ListClasses)
		group.GET("/classes/:id", h.GetClass)
		group.POST("/classes", adminMiddleware, h.CreateClass)
		group.PATCH("/classes/:id", adminMiddleware, h.UpdateClass)
		group.DELETE("/classes/:id", adminMiddleware, h.DeleteClass)
		group.POST("/classes/:id/enroll", adminMiddleware, h.Enroll)
		group.DELETE("/classes/:id/enroll", adminMiddleware, h.Unenroll)
	}
}
