package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

/*
 * 'RequestError' is the single failure shape surfaced to API callers:
 * {title, statusCode, details}. Every service-layer failure is one of these;
 * anything else reaching the transport is reported as an internal error.
 */
type RequestError struct {
	Title      string   `json:"title"`
	StatusCode int      `json:"statusCode"`
	Details    []string `json:"details"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Title, e.StatusCode, strings.Join(e.Details, "; "))
}

func NewValidationError(details ...string) *RequestError {
	return &RequestError{Title: "Validation Error", StatusCode: http.StatusBadRequest, Details: details}
}

func NewNotFoundError(details ...string) *RequestError {
	return &RequestError{Title: "Not Found", StatusCode: http.StatusNotFound, Details: details}
}

func NewBadRequestError(details ...string) *RequestError {
	return &RequestError{Title: "Bad Request", StatusCode: http.StatusBadRequest, Details: details}
}

func NewBadGatewayError(details ...string) *RequestError {
	return &RequestError{Title: "Bad Gateway Error", StatusCode: http.StatusBadGateway, Details: details}
}

// BindingError converts a gin binding failure into a ValidationError listing
// the violated fields.
func BindingError(err error) *RequestError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s failed validation rule '%s'", fe.Field(), fe.Tag()))
		}
		return NewValidationError(details...)
	}
	return NewValidationError(err.Error())
}

// AbortWithError writes the error payload for a RequestError, or a generic
// 500 for anything unexpected.
func AbortWithError(c *gin.Context, err error) {
	var re *RequestError
	if errors.As(err, &re) {
		c.AbortWithStatusJSON(re.StatusCode, re)
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, &RequestError{
		Title:      "Internal Server Error",
		StatusCode: http.StatusInternalServerError,
		Details:    []string{err.Error()},
	})
}
