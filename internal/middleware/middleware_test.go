package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(LoadSession())
	r.Use(RequestLogger(log))

	r.GET("/signin", func(c *gin.Context) {
		if err := SignIn(c, c.Query("user")); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/signout", func(c *gin.Context) {
		_ = SignOut(c)
		c.String(http.StatusOK, "bye")
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "hello "+CurrentSession(c).CurrentUser)
	})
	return r
}

func do(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_RedirectsWhenSignedOut(t *testing.T) {
	r := newTestEngine(zap.NewNop())

	rec := do(r, "/private", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSession_SignInAndOut(t *testing.T) {
	r := newTestEngine(zap.NewNop())

	rec := do(r, "/signin?user=alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = do(r, "/private", cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello alice", rec.Body.String())

	rec = do(r, "/signout", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()

	rec = do(r, "/private", cleared)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestCurrentSession_Default(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	s := CurrentSession(c)
	assert.False(t, s.Authenticated)
	assert.Empty(t, s.CurrentUser)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newTestEngine(zap.New(core))

	rec := do(r, "/private", nil)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(HeaderRequestID))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.Equal(t, "fixed-id", fields["request_id"])
	assert.Equal(t, "/private", fields["path"])
	assert.EqualValues(t, http.StatusFound, fields["status"])
}
