package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/maintenance"
	"github.com/campushub/campus-services-backend/internal/pkg/request"
	"github.com/campushub/campus-services-backend/internal/pkg/response"
	"github.com/campushub/campus-services-backend/internal/user"
)

type Handler struct {
	service maintenance.Service
}

func NewHandler(service maintenance.Service) *Handler {
	return &Handler{service: service}
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}

func (h *Handler) List(c *gin.Context) {
	var q ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	// Non-admins only ever see their own reports.
	requesterID := auth.GetUserID(c)
	if isAdmin(c) {
		requesterID = q.UserID
	}

	filter := maintenance.Filter{
		RoomID:      q.RoomID,
		RequesterID: requesterID,
		Status:      q.Status,
		Priority:    q.Priority,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	requests, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, 0, len(requests))
	for _, m := range requests {
		items = append(items, NewRequestResponse(m))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !isAdmin(c) && m.RequesterID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(m))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Create(c.Request.Context(), maintenance.CreateRequest{
		RoomID:      body.RoomID,
		RequesterID: auth.GetUserID(c),
		Description: body.Description,
		Priority:    maintenance.Priority(body.Priority),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(m))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, maintenance.UpdateStatusRequest{
		Status:        maintenance.Status(body.Status),
		AdminFeedback: body.AdminFeedback,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(m))
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required", "details": err.Error()})
		return
	}

	p, err := h.service.UploadPhoto(c.Request.Context(), uri.ID, auth.GetUserID(c), isAdmin(c), header)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

func (h *Handler) ServePhoto(c *gin.Context) {
	id := c.Param("photoID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.DownloadPhoto(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", p.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing useful to send.
		return
	}
}

func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("photoID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo ID is required"})
		return
	}

	stream, p, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+p.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}
