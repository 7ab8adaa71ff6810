package middleware

import (
	"net/http"

	"ChatProject/logger"
	"ChatProject/tools/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the body of every REST reply.
type Response struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, code int, data any, msg string) {
	c.JSON(code, Response{Success: true, Code: code, Message: msg, Data: data})
}

// Fail writes err as a coded error response. Uncoded errors are logged and
// reported as internal errors without detail.
func Fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	ce, ok := errs.As(err)
	if !ok || status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()), zap.String("trace_id", TraceID(c)), zap.Error(err))
	}
	msg := http.StatusText(status)
	if ok {
		msg = ce.Msg
		if ce.Detail != "" && status != http.StatusInternalServerError {
			msg += ": " + ce.Detail
		}
	}
	c.AbortWithStatusJSON(status, Response{Success: false, Code: status, Message: msg})
}
