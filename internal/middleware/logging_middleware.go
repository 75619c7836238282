package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/takinashida/voxelcore/internal/logging"
)

// RequestLogger снабжает каждый HTTP-запрос уникальным ID и пишет краткие логи
// через логгер компонента http.

type RequestLogger struct {
	log *logging.Logger
}

func NewRequestLogger() *RequestLogger {
	return &RequestLogger{log: logging.GetHTTPLogger()}
}

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		clientIP := c.ClientIP()

		rl.log.Debug("[HTTP] ▶ %s %s ip=%s id=%s", method, path, clientIP, requestID)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		rl.log.Info("[HTTP] ◀ %s %s %d %s id=%s", method, path, status, latency, requestID)
	}
}
