package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/metrics"
)

// MetricsMiddleware registra cantidad y latencia de peticiones por ruta registrada.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" {
			route = c.Path()
		}
		code := strconv.Itoa(status)
		m.RequestsTotal.WithLabelValues(route, c.Method(), code).Inc()
		m.RequestLatency.WithLabelValues(c.Method(), route, code).Observe(time.Since(start).Seconds())
		return err
	}
}
