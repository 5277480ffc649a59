package utils

import (
	stderrors "errors"
	"net/http"

	apperrors "hospital-finder/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// HandleError maps err to a status code and sends an error response.
// Internal failures are reported with fallback instead of the raw error.
func HandleError(c *gin.Context, err error, fallback string) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		ErrorResponse(c, http.StatusNotFound, message(err))
	case apperrors.ErrorTypeValidation:
		ErrorResponse(c, http.StatusBadRequest, message(err))
	default:
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}

func message(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
