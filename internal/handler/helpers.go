package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/internal/metrics"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

// parseID parses a numeric path parameter.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// parseInt64 parses a decimal query value.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// writeDomainError maps a domain error to an HTTP response.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsAuthorizationError(err):
		response.Forbidden(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, err.Error())
	case domain.IsPaymentError(err):
		response.UnprocessableEntity(c, err.Error())
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		metrics.ErrorsTotal.Inc(c.Request.Context())
		response.InternalError(c, err)
	}
}
