package middleware

import (
	"net/http"
	"time"

	domainerrors "minmod/internal/domain/errors"
	"minmod/internal/errors"

	"github.com/labstack/echo/v4"
)

// RequestRecorder receives one observation per handled request.
type RequestRecorder interface {
	RequestHandled(method, route string, code int, elapsed time.Duration)
}

// MetricsMiddleware records request counts and latencies by route template.
type MetricsMiddleware struct {
	recorder RequestRecorder
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(recorder RequestRecorder) *MetricsMiddleware {
	return &MetricsMiddleware{recorder: recorder}
}

// Handle records the request once the handler returns.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			status = statusOf(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.recorder.RequestHandled(c.Request().Method, route, status, time.Since(start))

		return err
	}
}

// statusOf predicts the status the error handler will write for err.
func statusOf(err error) int {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
