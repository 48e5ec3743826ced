package middleware

import (
	"strconv"

	"skill-matrix/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// MetricsMiddleware counts requests by method, route pattern and status.
// The route pattern, not the raw URL, keeps the label cardinality bounded.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Method(),
			path,
			strconv.Itoa(c.Response().StatusCode()),
		).Inc()

		return err
	}
}
