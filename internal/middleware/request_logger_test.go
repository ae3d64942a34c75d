package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

// captureLogs redirects the global logger into a buffer for one test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	t.Cleanup(func() { zlog.Logger = previous })
	return &buf
}

func TestRequestLogger(t *testing.T) {
	t.Run("logs method, path and status at info", func(t *testing.T) {
		buf := captureLogs(t)

		router := gin.New()
		router.Use(RequestID())
		router.Use(RequestLogger())
		router.GET("/plans", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/plans?limit=5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		out := buf.String()
		assert.Contains(t, out, `"level":"info"`)
		assert.Contains(t, out, `"method":"GET"`)
		assert.Contains(t, out, `"path":"/plans?limit=5"`)
		assert.Contains(t, out, `"status":200`)
		assert.Contains(t, out, `"request_id"`)
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		buf := captureLogs(t)

		router := gin.New()
		router.Use(RequestLogger())
		router.GET("/missing", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false})
		})

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		out := buf.String()
		assert.Contains(t, out, `"level":"warn"`)
		assert.Contains(t, out, `"status":404`)
	})

	t.Run("server errors log at error", func(t *testing.T) {
		buf := captureLogs(t)

		router := gin.New()
		router.Use(RequestLogger())
		router.GET("/boom", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		})

		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		out := buf.String()
		assert.Contains(t, out, `"level":"error"`)
		assert.Contains(t, out, `"status":500`)
	})
}
