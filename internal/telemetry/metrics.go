package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts gateway orders opened, labeled by payment type.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_orders_created_total",
		Help: "Number of payment orders created",
	}, []string{"payment_type"})

	// VerificationResults counts verification outcomes: completed, failed,
	// already_completed, already_failed, not_found, error.
	VerificationResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_verifications_total",
		Help: "Number of payment verification attempts by outcome",
	}, []string{"outcome"})

	// IssuesReported counts public issue reports.
	IssuesReported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issues_reported_total",
		Help: "Number of issues reported",
	})

	// DonationsCompleted counts donations that reached completed.
	DonationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donations_completed_total",
		Help: "Number of donations completed",
	})
)
