package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/parleychat/parley/internal/rooms"
)

type ApiError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

func lower(s string) string {
	return strings.ToLower(s)
}

func NewBadRequestError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusBadRequest,
		Message:    lower(http.StatusText(http.StatusBadRequest)),
	}
}

func NewNotFoundError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusNotFound,
		Message:    lower(http.StatusText(http.StatusNotFound)),
	}
}

func NewInternalServerError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    lower(http.StatusText(http.StatusInternalServerError)),
		Err:        err,
	}
}

func NewUnauthorizedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusUnauthorized,
		Message:    lower(http.StatusText(http.StatusUnauthorized)),
	}
}

func NewForbiddenError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusForbidden,
		Message:    lower(http.StatusText(http.StatusForbidden)),
	}
}

func NewMethodNotAllowedError() *ApiError {
	return &ApiError{
		StatusCode: http.StatusMethodNotAllowed,
		Message:    lower(http.StatusText(http.StatusMethodNotAllowed)),
	}
}

// fromDomainError translates coordinator failures into transport
// responses. Denial kinds keep their message so clients can tell a
// quota rejection from a bad role name.
func fromDomainError(err error) *ApiError {
	switch rooms.KindOf(err) {
	case rooms.KindNotFound:
		return NewNotFoundError()
	case rooms.KindUnauthorized, rooms.KindAgeRestricted:
		return NewForbiddenError()
	case rooms.KindInvalidCredential:
		return NewUnauthorizedError()
	case rooms.KindQuotaExceeded:
		return &ApiError{
			StatusCode: http.StatusConflict,
			Message:    err.Error(),
		}
	case rooms.KindInvalidRole:
		return &ApiError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	case rooms.KindUnavailable:
		return &ApiError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    lower(http.StatusText(http.StatusServiceUnavailable)),
			Err:        err,
		}
	default:
		return NewInternalServerError(err)
	}
}
