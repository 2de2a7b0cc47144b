package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ObservationsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_observations_stored_total",
			Help: "Total price observations appended to the ledger",
		},
	)

	PriceUpdatesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_updates_submitted_total",
			Help: "Total price update batches submitted to Trendyol",
		},
	)

	ReconcileRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconcile_records_total",
			Help: "Unified records produced by catalog reconciliation",
		},
		[]string{"outcome"}, // matched or unmatched
	)

	Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_classifications_total",
			Help: "Historical-low classifications by tier",
		},
		[]string{"tier"},
	)
)

// Register installs the collectors on the default registry. Call once at
// startup before serving /metrics.
func Register() {
	prometheus.MustRegister(
		ObservationsStored,
		PriceUpdatesSubmitted,
		ReconcileRecords,
		Classifications,
	)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
