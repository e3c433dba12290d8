package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request.id"

	slowRequest = 500 * time.Millisecond
)

// RequestID tags every request with an id, reusing the caller's X-Request-ID when sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs method, path, status and duration of each request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		elapsed := time.Since(start)
		level := "[DEBUG]"
		if elapsed > slowRequest {
			level = "[WARN]"
		}
		log.Printf("%s %s %s %d %s rid=%s ip=%s", level, c.Request.Method, path, c.Writer.Status(),
			elapsed.Round(time.Microsecond), c.GetString(requestIDKey), c.ClientIP())
	}
}
