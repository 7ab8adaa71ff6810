package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCodeError_WrapMsg_KeepsCode(t *testing.T) {
	req := require.New(t)

	err := ErrForbidden.WrapMsg("not the sender", "messageId", 42, "userId", 7)

	req.True(errors.Is(err, ErrForbidden))
	req.False(errors.Is(err, ErrUnauthorized))

	ce, ok := As(err)
	req.True(ok)
	req.Equal(http.StatusForbidden, ce.Code)
	req.Equal("not the sender, messageId=42, userId=7", ce.Detail)
	// the shared sentinel is never mutated
	req.Empty(ErrForbidden.Detail)
}

func TestCodeError_Is_ThroughFmtWrap(t *testing.T) {
	req := require.New(t)

	err := fmt.Errorf("lookup: %w", ErrRecordNotFound.Wrap())

	req.ErrorIs(err, ErrRecordNotFound)
	req.Equal(http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_PlainError(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
	req.Equal(http.StatusBadRequest, HTTPStatus(ErrArgs.WrapMsg("missing to")))
}

func TestCodeError_Error(t *testing.T) {
	req := require.New(t)

	req.Equal("401 unauthorized", ErrUnauthorized.Error())
	req.Equal("401 unauthorized token expired", ErrUnauthorized.WithDetail("token expired").Error())
}

func TestErrPanic(t *testing.T) {
	req := require.New(t)

	req.Nil(ErrPanic(nil))
	err := ErrPanic("bad state")
	req.ErrorIs(err, ErrInternal)
	req.Contains(err.Error(), "panic: bad state")
}
