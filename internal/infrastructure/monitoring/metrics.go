package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersRegisteredTotal prometheus.Counter
	CreditsIssuedTotal       *prometheus.CounterVec
	OverdueInProgressCredits prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_system_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_system_customers_registered_total",
				Help: "Total number of customers successfully registered.",
			},
		),
		CreditsIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_system_credits_issued_total",
				Help: "Total number of credit issuance attempts by outcome.",
			},
			[]string{"status"},
		),
		OverdueInProgressCredits: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "credit_system_overdue_in_progress_credits",
				Help: "Credits still IN_PROGRESS past their first installment day, as of the last batch run.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerRegistered() {
	Business.CustomersRegisteredTotal.Inc()
}

func RecordCreditIssued(status string) {
	Business.CreditsIssuedTotal.WithLabelValues(status).Inc()
}

func SetOverdueInProgressCredits(count int) {
	Business.OverdueInProgressCredits.Set(float64(count))
}
