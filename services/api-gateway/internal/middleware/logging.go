package middleware

import (
	"time"

	"gameplatform/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RequestLogger(lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		lg.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_id", c.GetString("userId"),
		)
	}
}
