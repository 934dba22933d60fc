package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody truncates captured bodies in the access log.
const maxLoggedBody = 2048

// Logging writes one line per request with status class, request id, method,
// path, latency and both bodies. Errors attached with c.Error are appended so
// operators see driver detail that the client never receives.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Capture request body
		var reqBodyBytes []byte
		if c.Request.Body != nil {
			reqBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
		}

		// Capture response body
		rec := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		api := path
		if query != "" {
			api = api + "?" + query
		}

		status := c.Writer.Status()
		logLine := fmt.Sprintf("%s | %s | %s | %d | %s %s | %s | request: %s | response: %s |",
			time.Now().Format(time.RFC3339Nano),
			levelString(status),
			GetRequestID(c),
			status,
			c.Request.Method,
			api,
			time.Since(start).Round(time.Microsecond),
			truncate(reqBodyBytes),
			truncate(rec.body.Bytes()),
		)
		if errs := c.Errors.String(); errs != "" {
			logLine += " errors: " + errs
		}

		switch {
		case status >= 500:
			log.Error(logLine)
		case status >= 400:
			log.Warn(logLine)
		default:
			log.Info(logLine)
		}
	}
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func truncate(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "...(truncated)"
}

func levelString(status int) string {
	switch {
	case status >= 500:
		return "ERROR"
	case status >= 400:
		return "WARN"
	default:
		return "INFO"
	}
}
