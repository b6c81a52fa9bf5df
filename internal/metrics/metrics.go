package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. Each instance
// owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	ReportsSubmitted *prometheus.CounterVec
	ReportsUpdated   *prometheus.CounterVec
	IMEIChecks       *prometheus.CounterVec
	AdminLogins      *prometheus.CounterVec
	SchemaDegraded   prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imeiwatch_reports_submitted_total",
			Help: "Reports accepted, by initial status.",
		}, []string{"status"}),
		ReportsUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imeiwatch_reports_updated_total",
			Help: "Admin report updates, by new status.",
		}, []string{"status"}),
		IMEIChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imeiwatch_imei_checks_total",
			Help: "Public IMEI checks, by whether any public report matched.",
		}, []string{"result"}),
		AdminLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "imeiwatch_admin_logins_total",
			Help: "Admin login attempts, by outcome.",
		}, []string{"result"}),
		SchemaDegraded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "imeiwatch_schema_degraded",
			Help: "1 if schema initialization failed at startup.",
		}),
	}
	reg.MustRegister(
		m.ReportsSubmitted,
		m.ReportsUpdated,
		m.IMEIChecks,
		m.AdminLogins,
		m.SchemaDegraded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncSubmitted counts an accepted report.
func (m *Metrics) IncSubmitted(status string) {
	m.ReportsSubmitted.WithLabelValues(status).Inc()
}

// IncUpdated counts an applied admin update.
func (m *Metrics) IncUpdated(status string) {
	m.ReportsUpdated.WithLabelValues(status).Inc()
}

// IncCheck counts a public check; hit is true when any report matched.
func (m *Metrics) IncCheck(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IMEIChecks.WithLabelValues(result).Inc()
}

// IncLogin counts a login attempt with the given outcome
// (success, invalid, unconfigured, error).
func (m *Metrics) IncLogin(result string) {
	m.AdminLogins.WithLabelValues(result).Inc()
}

// SetDegraded records whether the service started in a degraded state.
func (m *Metrics) SetDegraded(degraded bool) {
	if degraded {
		m.SchemaDegraded.Set(1)
		return
	}
	m.SchemaDegraded.Set(0)
}
