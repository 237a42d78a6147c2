package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-kanban/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int
	Kind    services.ErrorKind
	Message string
}

func newAPIError(code int, kind services.ErrorKind, message string) apiError {
	return apiError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{
		"error": err.Message,
		"kind":  err.Kind,
	})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, services.KindValidation, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, services.KindUnauthenticated, message)
}

// abortWithServiceError translates a service failure into the
// HTTP surface: the status comes from the error kind and the
// kind itself travels in the body for clients to branch on.
func abortWithServiceError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	message := err.Error()

	var code int
	switch kind {
	case services.KindValidation:
		code = http.StatusBadRequest
	case services.KindUnauthenticated:
		code = http.StatusUnauthorized
	case services.KindNotFound:
		code = http.StatusNotFound
	case services.KindForbidden:
		code = http.StatusForbidden
	case services.KindConflict:
		// The register surface reports duplicate emails as a
		// plain bad request.
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
		message = "something went wrong"
	}

	abort(c, newAPIError(code, kind, message))
}
