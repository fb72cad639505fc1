package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arcadeboard/scores-api/internal/api/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request count and latency by route template, so ids in
// the path do not explode label cardinality. The set of route templates is
// taken from the router on the first request, once all routes are registered.
func Metrics() echo.MiddlewareFunc {
	var (
		once   sync.Once
		routes map[string]struct{}
	)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			once.Do(func() { routes = routeSet(c.Echo()) })

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			route := c.Path()
			if _, ok := routes[route]; !ok {
				route = unmatchedRoute
			}
			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func routeSet(e *echo.Echo) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range e.Routes() {
		set[r.Path] = struct{}{}
	}
	return set
}
