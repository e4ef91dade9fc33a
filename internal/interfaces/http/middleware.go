package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := resolveError(c, c.Next())

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", routeOf(c)).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Interface("request_id", c.Locals(LocalRequestID)).
			Msg("request")
		return err
	}
}

// Metrics registra contador, latencia y peticiones en curso en Prometheus.
func Metrics(prom *observability.Prom) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if prom == nil {
			return c.Next()
		}
		start := time.Now()
		prom.InFlight.Inc()
		defer prom.InFlight.Dec()

		err := resolveError(c, c.Next())
		prom.ObserveHTTP(c.Method(), routeOf(c), strconv.Itoa(c.Response().StatusCode()), time.Since(start).Seconds())
		return err
	}
}

// Tracing abre un span por petición, continúa la traza entrante (W3C traceparent) y
// propaga el contexto a los casos de uso vía c.UserContext().
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier(http.Header(c.GetReqHeaders()))
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		ctx, span := observability.Tracer().Start(ctx, "HTTP "+c.Method(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(c.Method()),
				semconv.URLPath(c.Path()),
			),
		)
		defer span.End()
		c.SetUserContext(ctx)

		err := resolveError(c, c.Next())

		route := routeOf(c)
		status := c.Response().StatusCode()
		span.SetName("HTTP " + c.Method() + " " + route)
		span.SetAttributes(semconv.HTTPRoute(route), semconv.HTTPResponseStatusCode(status))
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}

// routeOf devuelve el patrón de la ruta ("/api/products/:id") para no disparar cardinalidad.
func routeOf(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return "unknown"
}
