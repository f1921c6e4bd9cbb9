package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/pkg/request"
	"github.com/campushub/campus-services-backend/internal/pkg/response"
	"github.com/campushub/campus-services-backend/internal/timetable"
)

type Handler struct {
	service   timetable.Service
	lecturers lecturer.Service
}

func NewHandler(service timetable.Service, lecturers lecturer.Service) *Handler {
	return &Handler{service: service, lecturers: lecturers}
}

func (h *Handler) ListClasses(c *gin.Context) {
	var q ListClassesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := timetable.Filter{
		RoomID:     q.RoomID,
		LecturerID: q.LecturerID,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	if q.DayOfWeek != nil {
		day := time.Weekday(*q.DayOfWeek)
		filter.DayOfWeek = &day
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}

	classes, total, err := h.service.ListClasses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newClassResponses(classes), filter.Page, filter.PageSize, total))
}

func (h *Handler) GetClass(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	cl, err := h.service.GetClass(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassResponse(cl))
}

func (h *Handler) CreateClass(c *gin.Context) {
	var body CreateClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.CreateClass(c.Request.Context(), timetable.CreateClassRequest{
		Name:       body.Name,
		DayOfWeek:  body.DayOfWeek,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		RoomID:     body.RoomID,
		LecturerID: body.LecturerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClassResponse(cl))
}

func (h *Handler) UpdateClass(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cl, err := h.service.UpdateClass(c.Request.Context(), uri.ID, timetable.UpdateClassRequest{
		Name:       body.Name,
		DayOfWeek:  body.DayOfWeek,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		RoomID:     body.RoomID,
		LecturerID: body.LecturerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClassResponse(cl))
}

func (h *Handler) DeleteClass(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeleteClass(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Enroll(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body EnrollBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.Enroll(c.Request.Context(), uri.ID, body.StudentID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Unenroll(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body EnrollBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.Unenroll(c.Request.Context(), uri.ID, body.StudentID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MyTimetable returns the classes the calling student is enrolled in.
func (h *Handler) MyTimetable(c *gin.Context) {
	classes, err := h.service.StudentTimetable(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": newClassResponses(classes)})
}

// MySchedule returns the teaching schedule for the calling lecturer.
func (h *Handler) MySchedule(c *gin.Context) {
	lec, err := h.lecturers.GetByUserID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	classes, err := h.service.LecturerSchedule(c.Request.Context(), lec.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": newClassResponses(classes)})
}
