package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// FromBusiness maps known business codes onto HTTP statuses. Unknown
// errors fall through to a 500.
func FromBusiness(c *gin.Context, err error, message string) {
	code, ok := CodeOf(err)
	if !ok {
		Internal(c, "internal_error", message)
		return
	}

	switch code {
	case "time_conflict":
		Conflict(c, code, message)
	case "invalid_transition":
		Conflict(c, code, message)
	case "appointment_not_found", "service_not_found", "block_not_found", "client_not_found":
		NotFound(c, code, message)
	default:
		BadRequest(c, code, message)
	}
}
