package errs

import (
	"fmt"
	"net/http"
)

var (
	ErrArgs           = NewCodeError(http.StatusBadRequest, "bad request")
	ErrUnauthorized   = NewCodeError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden      = NewCodeError(http.StatusForbidden, "forbidden")
	ErrRecordNotFound = NewCodeError(http.StatusNotFound, "record not found")
	ErrInternal       = NewCodeError(http.StatusInternalServerError, "internal server error")
)

// HTTPStatus maps err onto a response status. Errors without a code are internal.
func HTTPStatus(err error) int {
	ce, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if ce.Code < 400 || ce.Code > 599 {
		return http.StatusInternalServerError
	}
	return ce.Code
}

func anyString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprint(v)
	}
}
