package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LeadsRegistered counts lead submissions by outcome.
	LeadsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_leads_registered_total",
			Help: "Total number of lead submissions.",
		},
		[]string{"status"},
	)

	// LeadsAdmitted counts leads that reached the admitted status.
	LeadsAdmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affiliate_leads_admitted_total",
			Help: "Total number of leads transitioned to admitted.",
		},
	)

	// TokensCredited counts commission tokens credited, by account type.
	TokensCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_tokens_credited_total",
			Help: "Total commission tokens credited to accounts.",
		},
		[]string{"account_type"},
	)

	// PayoutsRequested counts payout requests created.
	PayoutsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affiliate_payouts_requested_total",
			Help: "Total number of payout requests created.",
		},
	)

	// PayoutsProcessed counts payout decisions by outcome.
	PayoutsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_payouts_processed_total",
			Help: "Total number of payout requests processed.",
		},
		[]string{"outcome"},
	)

	// StaleUntouchedLeads tracks untouched leads older than the
	// reminder threshold, refreshed by the daily job.
	StaleUntouchedLeads = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affiliate_stale_untouched_leads",
			Help: "Untouched leads older than the reminder threshold.",
		},
	)
)
