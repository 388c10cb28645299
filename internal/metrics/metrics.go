// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matt-dz/foodgram/internal/domain"
)

const namespace = "foodgram"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	LedgerOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_operations_total",
			Help:      "Favorite and shopping cart mutations by ledger, operation and outcome.",
		},
		[]string{"ledger", "operation", "outcome"},
	)

	SubscriptionOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_operations_total",
			Help:      "Subscription mutations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	CompositionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_composition_duration_seconds",
			Help:      "Time spent in recipe create and update transactions.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	ShoppingListLines = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "shopping_list_lines",
			Help:      "Number of aggregated ingredient lines per downloaded shopping list.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		},
	)

	ImportedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Rows processed by the bulk importer by kind and result.",
		},
		[]string{"kind", "result"},
	)
)

// Outcome maps an operation error to an outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrSelfSubscription):
		return OutcomeConflict
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrValidationFailed), errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrForbidden):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
