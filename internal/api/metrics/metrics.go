// Package metrics defines the custom Prometheus metrics of the API. It is
// the single source of truth for metric names, labels, and help strings;
// request-level HTTP metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ecologie"

// DocumentsCreatedTotal counts created documents per resource collection.
var DocumentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_created_total",
		Help:      "Total number of documents created, by resource.",
	},
	[]string{"resource"},
)

// DocumentsDeletedTotal counts deleted documents per resource collection.
var DocumentsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_deleted_total",
		Help:      "Total number of documents deleted, by resource.",
	},
	[]string{"resource"},
)

// ValidationFailuresTotal counts rejected payloads per resource collection.
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of payloads rejected with validation errors, by resource.",
	},
	[]string{"resource"},
)

// LoginsTotal counts login attempts by resource and outcome.
// Outcomes: "success", "not_found", "bad_password", "throttled".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)
