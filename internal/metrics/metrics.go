// Package metrics defines the Prometheus collectors for authentication
// outcomes and database pool health.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication metrics
var (
	// LoginAttemptsTotal tracks login attempts by outcome. Outcomes stay
	// distinguishable here even where client-facing messages are unified.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by outcome (success, not_found, wrong_password, disabled, error)",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal tracks registration attempts by outcome
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration attempts by outcome (created, duplicate, error)",
		},
		[]string{"outcome"},
	)

	// SessionAuditFailures tracks best-effort session audit writes that
	// exhausted their retries
	SessionAuditFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_audit_failures_total",
			Help: "Session audit inserts dropped after retries",
		},
	)

	// LoginRateLimited tracks logins rejected by the per-IP rate limiter
	LoginRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_rate_limited_total",
			Help: "Login requests rejected by the rate limiter",
		},
	)
)

// Login outcome label values.
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeWrongPassword = "wrong_password"
	OutcomeDisabled      = "disabled"
	OutcomeError         = "error"

	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
)

// PoolStatsCollector exposes pgxpool statistics as gauges.
type PoolStatsCollector struct {
	pool *pgxpool.Pool

	acquired *prometheus.Desc
	idle     *prometheus.Desc
	total    *prometheus.Desc
	max      *prometheus.Desc
}

// NewPoolStatsCollector creates a collector for the given pool. Register it
// once at startup.
func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return &PoolStatsCollector{
		pool: pool,
		acquired: prometheus.NewDesc("db_pool_acquired_conns",
			"Connections currently checked out of the pool", nil, nil),
		idle: prometheus.NewDesc("db_pool_idle_conns",
			"Idle connections in the pool", nil, nil),
		total: prometheus.NewDesc("db_pool_total_conns",
			"Total connections held by the pool", nil, nil),
		max: prometheus.NewDesc("db_pool_max_conns",
			"Configured upper bound of the pool", nil, nil),
	}
}

func (c *PoolStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquired
	ch <- c.idle
	ch <- c.total
	ch <- c.max
}

func (c *PoolStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stat := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(stat.MaxConns()))
}
