package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workplan_recalculations_total",
			Help: "Total number of denormalized-load recalculations by entity",
		},
		[]string{"entity"},
	)

	SuggestionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workplan_suggestions_total",
			Help: "Total number of assignment suggestion runs",
		},
	)

	SuggestionShortfallHours = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workplan_suggestion_shortfall_hours_total",
			Help: "Hours left uncovered by suggestion runs",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workplan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	EpicSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workplan_epic_syncs_total",
			Help: "Total number of tracker epic sync runs by outcome",
		},
		[]string{"outcome"},
	)

	EpicsSynced = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workplan_epics_synced",
			Help: "Number of epics stored by the last sync run",
		},
	)
)
