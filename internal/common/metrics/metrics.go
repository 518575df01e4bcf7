// Package metrics defines the Prometheus collectors for the guarded
// operation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics

	// PipelineInvocations counts pipeline invocations by action and outcome.
	// outcome: success, or the taxonomy code class of the failure.
	PipelineInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storegate",
			Subsystem: "pipeline",
			Name:      "invocations_total",
			Help:      "Total pipeline invocations",
		},
		[]string{"action", "outcome"},
	)

	// PipelineDuration tracks end-to-end invocation duration.
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storegate",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline invocation duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	// PipelineRollbacks counts transaction rollbacks by action.
	PipelineRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storegate",
			Subsystem: "pipeline",
			Name:      "rollbacks_total",
			Help:      "Total transaction rollbacks",
		},
		[]string{"action"},
	)

	// AuthDenials counts authorization denials by taxonomy code.
	AuthDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storegate",
			Subsystem: "authz",
			Name:      "denials_total",
			Help:      "Total authorization denials",
		},
		[]string{"code"},
	)
)
