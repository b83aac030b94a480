package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Handle translates an error at the handler boundary. Known business
// codes get their mapped status, double-booking constraint violations
// become a 409, everything else a generic 500.
func Handle(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		if m, ok := businessStatus[be.Code]; ok {
			Write(c, m.Status, be.Code, m.Message)
			return
		}
		Internal(c, be.Code, "Internal error.")
		return
	}

	if IsExclusionConflict(err) || IsUniqueViolation(err) {
		Conflict(c, "time_conflict", "Selected time slot is not available.")
		return
	}

	Internal(c, "internal_error", "Internal error.")
}
