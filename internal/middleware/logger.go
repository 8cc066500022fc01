package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"svpportal/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ErrorLogger recovers panics into the usual {message, error} 500 body and
// logs every request that ends in a server error or carries c.Errors.
func ErrorLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				msg := fmt.Sprint(recovered)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Server error",
					"error":   msg,
				})
				metrics.ServerErrors.WithLabelValues("panic").Inc()
				logRequestError(c, start, "panic", msg)
				log.Printf("request_panic_stack request_id=%s stack=%s", requestID(c), debug.Stack())
				return
			}

			status := c.Writer.Status()
			if len(c.Errors) > 0 {
				for _, e := range c.Errors {
					logRequestError(c, start, "handler", e.Error())
				}
				if status >= http.StatusInternalServerError {
					metrics.ServerErrors.WithLabelValues("handler").Inc()
				}
				return
			}
			if status >= http.StatusInternalServerError {
				metrics.ServerErrors.WithLabelValues("status").Inc()
				logRequestError(c, start, "status", http.StatusText(status))
			}
		}()

		c.Next()
	}
}

func logRequestError(c *gin.Context, start time.Time, cause, message string) {
	log.Printf(
		"request_error cause=%s status=%d method=%s route=%s client_ip=%s user_id=%d role=%s request_id=%s latency=%s error=%q",
		cause,
		c.Writer.Status(),
		c.Request.Method,
		c.FullPath(),
		c.ClientIP(),
		c.GetInt64(ctxUserID),
		c.GetString(ctxRole),
		requestID(c),
		time.Since(start),
		message,
	)
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return c.Writer.Header().Get("X-Request-ID")
}
