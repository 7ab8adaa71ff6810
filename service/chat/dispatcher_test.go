package chat

import (
	"context"
	"testing"

	"ChatProject/tools/errs"

	"github.com/stretchr/testify/require"
)

type funcHandler struct {
	event string
	fn    func(*Context, *Frame) error
}

func (h funcHandler) Event() string                       { return h.event }
func (h funcHandler) Handle(ctx *Context, f *Frame) error { return h.fn(ctx, f) }

func TestDispatcher(t *testing.T) {
	req := require.New(t)
	d := NewDispatcher()
	var got string
	d.Register(funcHandler{event: "ping", fn: func(_ *Context, f *Frame) error {
		got = string(f.Data)
		return nil
	}})

	ctx := &Context{Context: context.Background()}
	req.NoError(d.Dispatch(ctx, &Frame{Event: "ping", Data: []byte(`{"n":1}`)}))
	req.Equal(`{"n":1}`, got)

	err := d.Dispatch(ctx, &Frame{Event: "pong"})
	req.ErrorIs(err, errs.ErrArgs)
	req.Nil(d.GetHandler("pong"))
	req.Equal([]string{"ping"}, d.Events())
}
