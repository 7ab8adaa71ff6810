package security

import (
	"net/http"
	"strings"

	"ChatProject/tools/errs"

	"github.com/gin-gonic/gin"
)

// Context keys set by Middleware.
const (
	PPCtxAuthKey   = "authorization" // string, raw token
	PPCtxUserIDKey = "userId"        // int64
)

const (
	queryToken  = "token"
	cookieToken = "accessToken"
)

// VerifyFunc resolves a bearer token to a user id.
type VerifyFunc func(token string) (int64, error)

// TokenFromRequest finds the bearer credential in, in order: the "token"
// query parameter, the Authorization header, the accessToken cookie.
func TokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.URL.Query().Get(queryToken)); t != "" {
		return t
	}
	if authz := strings.TrimSpace(r.Header.Get("Authorization")); authz != "" {
		if len(authz) > len("bearer ") && strings.EqualFold(authz[:len("bearer ")], "bearer ") {
			return strings.TrimSpace(authz[len("bearer "):])
		}
	}
	if ck, err := r.Cookie(cookieToken); err == nil {
		return strings.TrimSpace(ck.Value)
	}
	return ""
}

// Middleware rejects requests without a valid bearer token and stores the
// caller's id under PPCtxUserIDKey.
func Middleware(verify VerifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request)
		if token == "" {
			abort(c, errs.ErrUnauthorized.WithDetail("please login"))
			return
		}
		uid, err := verify(token)
		if err != nil {
			ce, ok := errs.As(err)
			if !ok {
				ce = errs.ErrUnauthorized.WithDetail("invalid token")
			}
			abort(c, ce)
			return
		}
		c.Set(PPCtxAuthKey, token)
		c.Set(PPCtxUserIDKey, uid)
		c.Next()
	}
}

// UserID returns the authenticated caller set by Middleware.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(PPCtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abort(c *gin.Context, ce *errs.CodeError) {
	c.AbortWithStatusJSON(errs.HTTPStatus(ce), gin.H{
		"success": false,
		"code":    ce.Code,
		"message": ce.Msg,
		"detail":  ce.Detail,
	})
}
