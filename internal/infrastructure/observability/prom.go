package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "commodities"

// Prom métricas Prometheus de la API. Un *Prom nil es válido y no registra nada.
type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         prometheus.Gauge
	// DB
	DbQueryDuration *prometheus.HistogramVec
	DbErrorsTotal   *prometheus.CounterVec
	// Auth y GraphQL
	AuthAttempts      *prometheus.CounterVec
	GraphQLOperations *prometheus.CounterVec
}

// NewProm crea y registra las métricas en reg.
func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de peticiones HTTP procesadas.",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de las peticiones HTTP.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_in_flight_requests",
				Help:      "Peticiones HTTP en curso.",
			},
		),
		DbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Latencia por operación lógica del repositorio.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2},
			},
			[]string{"op", "status"},
		),
		DbErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "errors_total",
				Help:      "Errores de base de datos por operación y clase.",
			},
			[]string{"op", "class"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "attempts_total",
				Help:      "Intentos de register/login por resultado.",
			},
			[]string{"op", "outcome"},
		),
		GraphQLOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "graphql",
				Name:      "operations_total",
				Help:      "Operaciones GraphQL por campo raíz y resultado.",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight,
		p.DbQueryDuration, p.DbErrorsTotal, p.AuthAttempts, p.GraphQLOperations)
	return p
}

// ObserveHTTP registra una petición terminada.
func (p *Prom) ObserveHTTP(method, route, status string, seconds float64) {
	if p == nil {
		return
	}
	p.RequestsTotal.WithLabelValues(method, route, status).Inc()
	p.RequestsDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// ObserveAuth cuenta un intento de auth con su resultado (ok, conflict, invalid_credentials, ...).
func (p *Prom) ObserveAuth(op, outcome string) {
	if p == nil {
		return
	}
	p.AuthAttempts.WithLabelValues(op, outcome).Inc()
}

// ObserveGraphQL cuenta una operación GraphQL resuelta.
func (p *Prom) ObserveGraphQL(operation, outcome string) {
	if p == nil {
		return
	}
	p.GraphQLOperations.WithLabelValues(operation, outcome).Inc()
}
