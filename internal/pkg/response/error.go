package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campus-services-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error maps err to an HTTP response. AppError values use their own status
// and message; anything else is logged and reported as a 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	log.Printf("unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
