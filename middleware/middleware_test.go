package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ChatProject/tools/errs"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFail_CodedError(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	e.GET("/x", func(c *gin.Context) {
		Fail(c, errs.ErrForbidden.WrapMsg("not the sender"))
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	req.Equal(http.StatusForbidden, w.Code)
	req.JSONEq(`{"success":false,"code":403,"message":"forbidden: not the sender"}`, w.Body.String())
}

func TestFail_PlainErrorHidesDetail(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	e.GET("/x", func(c *gin.Context) {
		Fail(c, errors.New("pq: connection refused"))
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	req.Equal(http.StatusInternalServerError, w.Code)
	req.NotContains(w.Body.String(), "connection refused")
}

func TestOK(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	e.GET("/x", func(c *gin.Context) {
		OK(c, http.StatusCreated, gin.H{"id": 1}, "created")
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	req.Equal(http.StatusCreated, w.Code)
	req.JSONEq(`{"success":true,"code":201,"message":"created","data":{"id":1}}`, w.Body.String())
}

func TestOrigin(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	e.Use(Origin("http://a.test, http://b.test"))
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	// Given an allowed origin
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Origin", "http://b.test")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	req.Equal("http://b.test", w.Header().Get("Access-Control-Allow-Origin"))

	// Given a foreign origin
	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	req.Empty(w.Header().Get("Access-Control-Allow-Origin"))

	// Preflight never reaches the handler
	r = httptest.NewRequest(http.MethodOptions, "/x", nil)
	r.Header.Set("Origin", "http://a.test")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	req.Equal(http.StatusNoContent, w.Code)
}

func TestOriginAllowed_Wildcard(t *testing.T) {
	req := require.New(t)
	req.True(OriginAllowed("*", "http://anything"))
	req.True(OriginAllowed("", "http://anything"))
	req.False(OriginAllowed("http://a.test", "http://b.test"))
}

func TestLogging_TraceID(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	e.Use(Logging())
	var seen string
	e.GET("/x", func(c *gin.Context) {
		seen = TraceID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	req.NotEmpty(seen)
	req.Equal(seen, w.Header().Get("X-Trace-Id"))

	// an incoming trace id is kept
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("X-Trace-Id", "abc")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	req.Equal("abc", seen)
}

func TestRoutes_AuthIsApplied(t *testing.T) {
	req := require.New(t)
	e := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	GET(e, "/public", ok, RouteOpt{})
	GET(e, "/private", ok, RouteOpt{Auth: deny})
	POST(e, "/private", ok, RouteOpt{Auth: deny})
	DELETE(e, "/private", ok, RouteOpt{Auth: deny})

	for _, tc := range []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/public", http.StatusOK},
		{http.MethodGet, "/private", http.StatusUnauthorized},
		{http.MethodPost, "/private", http.StatusUnauthorized},
		{http.MethodDelete, "/private", http.StatusUnauthorized},
	} {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		req.Equal(tc.want, w.Code, tc.method+" "+tc.path)
	}
}

func TestMiddlewareManager_Order(t *testing.T) {
	req := require.New(t)
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { order = append(order, name); c.Next() }
	}
	m := NewManager(mark("a"))
	m.Add(mark("b"))

	e := gin.New()
	m.Install(e)
	e.GET("/x", func(c *gin.Context) { order = append(order, "h") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	req.Equal([]string{"a", "b", "h"}, order)

	m.Clear()
	req.Empty(m.Handlers())
}
