package chat

import (
	"ChatProject/logger"
	"ChatProject/middleware"
	midsec "ChatProject/middleware/security"
	"ChatProject/tools/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleWS authenticates the bearer credential and only then upgrades the
// request. A rejected credential gets a 401 and never touches the registry.
func (s *Server) HandleWS(c *gin.Context) {
	token := midsec.TokenFromRequest(c.Request)
	uid, err := s.Authenticate(token)
	if err != nil {
		fields := []zap.Field{zap.String("remote", c.ClientIP()), zap.Error(err)}
		if token != "" {
			fields = append(fields, zap.String("token", security.HashToken(token)))
		}
		logger.Info("[HandleWS] authentication failed", fields...)
		middleware.Fail(c, err)
		return
	}

	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already wrote the http error
		logger.Info("[HandleWS] upgrade websocket error", zap.Stringer("user", uid), zap.Error(err))
		return
	}
	s.Serve(uid, ws)
}
