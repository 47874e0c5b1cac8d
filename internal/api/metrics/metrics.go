// Package metrics defines and registers the custom Prometheus metrics for
// the bootcamp directory API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Registration happens through promauto at package load; expose the default
// registry via promhttp before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ResourcesCreatedTotal counts successful resource creations.
// Label:
//   - resource: "bootcamp", "course" or "review"
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of resources created, by resource kind.",
	},
	[]string{"resource"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PhotoUploadsTotal counts bootcamp photo uploads.
// Label:
//   - result: "ok" or "rejected"
var PhotoUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_uploads_total",
		Help:      "Total number of bootcamp photo uploads, by result.",
	},
	[]string{"result"},
)

// PasswordResetsIssuedTotal counts password-reset tokens issued and mailed.
var PasswordResetsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_issued_total",
		Help:      "Total number of password-reset tokens issued.",
	},
)
