package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/pkg/request"
	"github.com/campushub/campus-services-backend/internal/pkg/response"
)

type Handler struct {
	service lecturer.Service
}

func NewHandler(service lecturer.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var q ListLecturersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := lecturer.Filter{
		Department: q.Department,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	lecturers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LecturerResponse, 0, len(lecturers))
	for _, l := range lecturers {
		items = append(items, NewLecturerResponse(l))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLecturerResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLecturerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), lecturer.CreateRequest{
		UserID:     body.UserID,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Department: body.Department,
		Office:     body.Office,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLecturerResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateLecturerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Update(c.Request.Context(), uri.ID, lecturer.UpdateRequest{
		UserID:     body.UserID,
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Department: body.Department,
		Office:     body.Office,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLecturerResponse(l))
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
