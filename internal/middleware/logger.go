package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger 每个请求一条访问日志
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		if identity, ok := GetIdentity(c); ok {
			entry = entry.WithFields(logrus.Fields{"user_id": identity.UserID, "org_id": identity.OrgID})
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}
