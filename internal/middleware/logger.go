package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger writes one entry per request. Errors attached to the context
// with c.Error are logged at error level along with the request.
func RequestLogger(logger log.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(log.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})

		switch {
		case len(c.Errors) > 0:
			entry.WithError(c.Errors.Last().Err).Error(http.StatusText(status))
		case status >= http.StatusInternalServerError:
			entry.Error(http.StatusText(status))
		case status >= http.StatusBadRequest:
			entry.Warn(http.StatusText(status))
		default:
			entry.Info(http.StatusText(status))
		}
	}
}
