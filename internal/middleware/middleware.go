package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valeevte/PurchaseReport/internal/logging"
	"github.com/valeevte/PurchaseReport/internal/metrics"
)

// RequestIDHeader: входящий id переиспользуется, иначе генерируется новый.
const RequestIDHeader = "X-Request-ID"

// RequestID кладёт id запроса в контекст и в заголовок ответа.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = logging.NewRequestID()
		}
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog: одна строка zerolog на запрос.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logging.Ctx(c.Request.Context()).Info()
		if status >= 500 {
			ev = logging.Ctx(c.Request.Context()).Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Metrics считает запросы по шаблону маршрута (не по сырому пути).
func Metrics(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
