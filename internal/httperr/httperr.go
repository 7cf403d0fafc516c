package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-sync/internal/storeerr"
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

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// FromError renders err by kind: business rules as 400, store categories
// as their HTTP counterparts, anything else as 500 with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode, message string) {
	if code, ok := BusinessCode(err); ok {
		BadRequest(c, code, message)
		return
	}

	switch storeerr.CategoryOf(err) {
	case storeerr.CategoryNotFound:
		NotFound(c, "not_found", "Resource not found.")
	case storeerr.CategoryAlreadyExists:
		Write(c, http.StatusConflict, "already_exists", "A document with this id already exists.")
	case storeerr.CategoryPermissionDenied:
		Write(c, http.StatusForbidden, "permission_denied", "The store refused access.")
	case storeerr.CategoryUnauthenticated:
		Write(c, http.StatusBadGateway, "store_unauthenticated", "The store rejected our credentials.")
	case storeerr.CategoryUnavailable:
		Write(c, http.StatusServiceUnavailable, "store_unavailable", "Store temporarily unavailable. Please try again.")
	default:
		Internal(c, fallbackCode, message)
	}
}
