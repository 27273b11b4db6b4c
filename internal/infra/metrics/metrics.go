// Package metrics provides Prometheus metrics for the progression engine:
// counters and gauges for tasks, penalties, events, achievements, and jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Tasks ──────────────────────────────────────────────────────────────────

// TasksCreated tracks created tasks by category.
var TasksCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "tasks_created_total",
	Help:      "Total tasks created.",
}, []string{"category"})

// TasksCompleted tracks completed tasks by category.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "tasks_completed_total",
	Help:      "Total tasks completed.",
}, []string{"category"})

// PointsAwarded tracks effective points posted, by attribute.
var PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "points_awarded_total",
	Help:      "Total effective points awarded.",
}, []string{"attribute"})

// ─── Progression ────────────────────────────────────────────────────────────

// AttributeValue tracks the current value of each attribute.
var AttributeValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "zero2one",
	Name:      "attribute_value",
	Help:      "Current attribute value.",
}, []string{"attribute"})

// StreakDays tracks the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "zero2one",
	Name:      "streak_days",
	Help:      "Current consecutive active-day streak.",
})

// ─── Penalties ──────────────────────────────────────────────────────────────

// PenaltiesApplied tracks inactivity penalties by severity tier.
var PenaltiesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "penalties_applied_total",
	Help:      "Total inactivity penalties applied.",
}, []string{"tier"})

// PenaltyPoints tracks total points debited by penalties.
var PenaltyPoints = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "penalty_points_total",
	Help:      "Total points debited by inactivity penalties.",
})

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsTriggered tracks triggered events by source and rarity.
var EventsTriggered = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "events_triggered_total",
	Help:      "Total events triggered.",
}, []string{"source", "rarity"})

// EventsExpired tracks archived events by outcome.
var EventsExpired = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "events_expired_total",
	Help:      "Total events expired, by outcome.",
}, []string{"outcome"})

// ActiveEvents tracks the number of currently live events.
var ActiveEvents = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "zero2one",
	Name:      "active_events",
	Help:      "Number of currently active events.",
})

// ─── Achievements & Jobs ────────────────────────────────────────────────────

// AchievementsUnlocked tracks one-shot achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// ChainStagesCompleted tracks chain stage advancements by chain id.
var ChainStagesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "chain_stages_completed_total",
	Help:      "Total achievement-chain stages completed.",
}, []string{"chain"})

// JobsAccepted tracks accepted jobs by tier.
var JobsAccepted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "zero2one",
	Name:      "jobs_accepted_total",
	Help:      "Total jobs accepted.",
}, []string{"tier"})
