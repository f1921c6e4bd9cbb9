package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/announcement"
	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/pkg/request"
	"github.com/campushub/campus-services-backend/internal/pkg/response"
	"github.com/campushub/campus-services-backend/internal/user"
)

type Handler struct {
	service announcement.Service
}

func NewHandler(service announcement.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var q ListAnnouncementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 50
	}

	role := user.Role(auth.GetUserRole(c))
	announcements, total, err := h.service.ListForRole(c.Request.Context(), role, q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		items = append(items, NewAnnouncementResponse(a))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnnouncementResponse(a))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAnnouncementBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), announcement.CreateRequest{
		Title:    body.Title,
		Content:  body.Content,
		Audience: announcement.Audience(body.Audience),
		PostedBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewAnnouncementResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateAnnouncementBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := announcement.UpdateRequest{
		Title:   body.Title,
		Content: body.Content,
	}
	if body.Audience != nil {
		audience := announcement.Audience(*body.Audience)
		req.Audience = &audience
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAnnouncementResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
