package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/auth"
	"github.com/campushub/campus-services-backend/internal/pkg/request"
	"github.com/campushub/campus-services-backend/internal/pkg/response"
	"github.com/campushub/campus-services-backend/internal/reservation"
	"github.com/campushub/campus-services-backend/internal/user"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) reservation.Actor {
	return reservation.Actor{
		UserID:  auth.GetUserID(c),
		IsAdmin: auth.GetUserRole(c) == string(user.RoleAdmin),
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor := actorFrom(c)

	// Non-admins only ever see their own reservations.
	requesterID := actor.UserID
	if actor.IsAdmin {
		requesterID = q.UserID
	}

	filter := reservation.Filter{
		RequesterID:  requesterID,
		ResourceKind: q.ResourceKind,
		ResourceID:   q.ResourceID,
		Status:       q.Status,
		Date:         q.Date,
		Page:         q.Page,
		PageSize:     q.PageSize,
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newReservationResponses(reservations), filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	actor := actorFrom(c)
	if !actor.IsAdmin && r.RequesterID != actor.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := reservation.CreateRequest{
		RequesterID:  auth.GetUserID(c),
		ResourceKind: body.ResourceKind,
		ResourceID:   body.ResourceID,
		Date:         body.Date,
		StartTime:    body.StartTime,
		EndTime:      body.EndTime,
		Purpose:      body.Purpose,
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		var conflict *reservation.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusConflict, ConflictListResponse{
				Error:     conflict.Error(),
				Conflicts: newReservationResponses(conflict.Conflicts),
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

// CheckConflicts is the read-only pre-check used for user feedback
// before submitting; passing it does not reserve anything.
func (h *Handler) CheckConflicts(c *gin.Context) {
	var q ConflictsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	conflicts, err := h.service.CheckConflicts(c.Request.Context(), reservation.ConflictQuery{
		ResourceKind: q.ResourceKind,
		ResourceID:   q.ResourceID,
		Date:         q.Date,
		StartTime:    q.StartTime,
		EndTime:      q.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conflicts": newReservationResponses(conflicts)})
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

	r, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, reservation.Status(body.Status), actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

// Cancel is the DELETE form of the pending -> cancelled transition,
// restricted to the owning requester.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), uri.ID, actorFrom(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
