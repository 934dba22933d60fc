package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	newRouter := func() *gin.Engine {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
		return r
	}

	t.Run("Should reuse a valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "trace-42")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, "trace-42", w.Body.String())
		assert.Equal(t, "trace-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("Should replace oversized or unprintable ids", func(t *testing.T) {
		for _, bad := range []string{"", strings.Repeat("x", 129), "has space", "tab\tid"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()
			newRouter().ServeHTTP(w, req)

			_, err := uuid.Parse(w.Body.String())
			assert.NoError(t, err, bad)
		}
	})
}

func TestRecovery(t *testing.T) {
	t.Run("Should turn a panic into a generic 500", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		r := gin.New()
		r.Use(Recovery(log), RequestID())
		r.GET("/boom", func(*gin.Context) { panic("secret driver state") })

		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(RequestIDHeader, "panic-7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"INTERNAL_ERROR"`)
		assert.NotContains(t, w.Body.String(), "secret driver state")
		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "request_id=panic-7")
		assert.Contains(t, w.Body.String(), `"request_id":"panic-7"`)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should short-circuit preflight requests", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("Should decorate normal responses", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogging(t *testing.T) {
	t.Run("Should log attached errors that the client never sees", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		r := gin.New()
		r.Use(RequestID(), Logging(log))
		r.POST("/items", func(c *gin.Context) {
			_ = c.Error(assert.AnError)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL_ERROR"})
		})

		req := httptest.NewRequest(http.MethodPost, "/items?x=1", strings.NewReader(`{"name":"Delta"}`))
		req.Header.Set(RequestIDHeader, "log-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		out := buf.String()
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "log-1")
		assert.Contains(t, out, "POST /items?x=1")
		assert.Contains(t, out, assert.AnError.Error())
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("Should truncate large bodies", func(t *testing.T) {
		long := strings.Repeat("a", maxLoggedBody+10)
		assert.Equal(t, strings.Repeat("a", maxLoggedBody)+"...(truncated)", truncate([]byte(long)))
		assert.Equal(t, "short", truncate([]byte("short")))
	})
}
