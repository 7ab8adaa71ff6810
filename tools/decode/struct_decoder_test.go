package decode

import (
	"testing"

	"ChatProject/tools/errs"

	"github.com/stretchr/testify/require"
)

type relayPayload struct {
	To      int64  `json:"to" validate:"required"`
	From    int64  `json:"from"`
	Message any    `json:"message"`
	Note    string `json:"note"`
}

func TestDecodeJSON_WeakNumbers(t *testing.T) {
	req := require.New(t)

	out, err := DecodeJSON[relayPayload]([]byte(`{"to":"12","from":3,"message":{"text":"hi"},"note":5}`))

	req.NoError(err)
	req.Equal(int64(12), out.To)
	req.Equal(int64(3), out.From)
	req.Equal("5", out.Note)
	req.Equal(map[string]any{"text": "hi"}, out.Message)
}

func TestDecodeJSON_LargeIDsKeepPrecision(t *testing.T) {
	req := require.New(t)

	out, err := DecodeJSON[relayPayload]([]byte(`{"to":9007199254740993}`))

	req.NoError(err)
	req.Equal(int64(9007199254740993), out.To)
}

func TestDecodeJSON_MissingRequired(t *testing.T) {
	req := require.New(t)

	_, err := DecodeJSON[relayPayload]([]byte(`{"from":3}`))

	req.ErrorIs(err, errs.ErrArgs)
}

func TestDecodeJSON_NotAnObject(t *testing.T) {
	req := require.New(t)

	_, err := DecodeJSON[relayPayload]([]byte(`[1,2]`))
	req.ErrorIs(err, errs.ErrArgs)

	_, err = DecodeJSON[relayPayload](nil)
	req.ErrorIs(err, errs.ErrArgs)
}

func TestDecodeMap_RejectsNonNumericID(t *testing.T) {
	req := require.New(t)

	_, err := DecodeMap[relayPayload](map[string]any{"to": "abc"}, Options{WeaklyTypedInput: true})

	req.Error(err)
}
