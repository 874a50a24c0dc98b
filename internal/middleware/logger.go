package middleware

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/logging"
)

// maskedParams never reach the log in clear text. Login and delete accept
// credentials in the query string, and the weather key travels as appid.
var maskedParams = []string{"appid", "password", "old_password", "new_password"}

// RequestLoggerMiddleware logs all incoming requests
// Format: METHOD URL | status | latency | request id
func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		fullURL := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			fullURL = fullURL + "?" + maskQuery(raw)
		}

		c.Next()

		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		requestID := GetRequestID(c)

		switch {
		case statusCode >= 500:
			logging.Error("%s %s | status=%d | latency=%v | id=%s | %s",
				c.Request.Method, fullURL, statusCode, latency, requestID, c.Errors.ByType(gin.ErrorTypeAny).String())
		case statusCode >= 400:
			logging.Warn("%s %s | status=%d | latency=%v | id=%s",
				c.Request.Method, fullURL, statusCode, latency, requestID)
		default:
			logging.Info("%s %s | status=%d | latency=%v | id=%s",
				c.Request.Method, fullURL, statusCode, latency, requestID)
		}
	}
}

// maskQuery replaces the values of sensitive parameters with "***".
// Unparseable queries are dropped entirely.
func maskQuery(raw string) string {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "(unparseable query)"
	}
	for _, key := range maskedParams {
		if _, ok := values[key]; ok {
			values.Set(key, "***")
		}
	}
	return values.Encode()
}
