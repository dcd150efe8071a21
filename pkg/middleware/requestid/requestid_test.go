package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusNoContent)
	})
	return r, &seen
}

func TestMiddlewareMintsID(t *testing.T) {
	r, seen := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	id := w.Header().Get(Header)
	require.NotEmpty(t, id)
	require.Equal(t, id, *seen)
}

func TestMiddlewareKeepsCallerID(t *testing.T) {
	r, seen := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(Header, "client-supplied-id")
	r.ServeHTTP(w, req)

	require.Equal(t, "client-supplied-id", w.Header().Get(Header))
	require.Equal(t, "client-supplied-id", *seen)
}

func TestValueWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, "", Value(c))
}
