// Package metrics registers the Prometheus counters of the registration
// and payment pipeline. The /metrics endpoint itself is mounted in the
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsCreated counts created registrations by kind
	// (free/paid).
	RegistrationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ministryhub_registrations_created_total",
		Help: "Number of registrations created, by kind.",
	}, []string{"kind"})

	// PaymentCallbacks counts processed gateway callbacks by final
	// status.
	PaymentCallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ministryhub_payment_callbacks_total",
		Help: "Number of processed payment callbacks, by final status.",
	}, []string{"status"})

	// ReceiptsGenerated counts generated PDF receipts.
	ReceiptsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ministryhub_receipts_generated_total",
		Help: "Number of generated PDF receipts.",
	})
)
