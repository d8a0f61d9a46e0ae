// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saarthi_conversation_turns_total",
			Help: "User turns handled, by the phase they arrived in",
		},
		[]string{"phase"},
	)

	ConversationReprompts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saarthi_conversation_reprompts_total",
			Help: "Turns that were not accepted and re-prompted",
		},
		[]string{"phase", "reason"},
	)

	PhaseTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saarthi_phase_transitions_total",
			Help: "Conversation phase changes",
		},
		[]string{"from", "to"},
	)

	UnderwritingVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saarthi_underwriting_verdicts_total",
			Help: "Underwriting verdicts by kind and reason",
		},
		[]string{"kind", "reason"},
	)

	SanctionsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saarthi_sanctions_issued_total",
			Help: "Loans finally approved",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "saarthi_sessions_active",
			Help: "Conversation sessions held in memory",
		},
	)

	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saarthi_sessions_evicted_total",
			Help: "Idle sessions removed by the reaper",
		},
	)

	AdvanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saarthi_advance_duration_seconds",
			Help:    "Time to compute a transition, excluding presentation pauses",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"phase"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saarthi_notifications_total",
			Help: "Sanction notices by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
