package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per matched route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		// Route templates keep label cardinality bounded.
		route := c.Route().Path
		method := c.Method()
		metrics.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
