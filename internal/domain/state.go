// Package domain holds the progression engine's core types.
// The engine owns exactly one UserState per session; every service mutates
// it through an explicit handle — no ambient globals, no hidden session.
package domain

import "time"

// Attribute names, fixed at six. Attribute values never go below zero.
const (
	AttrHealth       = "Health"
	AttrPhysical     = "Physical"
	AttrIntelligence = "Intelligence"
	AttrSpiritual    = "Spiritual"
	AttrCreativity   = "Creativity"
	AttrResilience   = "Resilience"
)

// AttributeNames lists all attributes in display order.
func AttributeNames() []string {
	return []string{
		AttrHealth, AttrPhysical, AttrIntelligence,
		AttrSpiritual, AttrCreativity, AttrResilience,
	}
}

// IsAttribute reports whether name is one of the six fixed attributes.
func IsAttribute(name string) bool {
	for _, a := range AttributeNames() {
		if a == name {
			return true
		}
	}
	return false
}

// Multipliers are the named scaling slots applied at reward time.
// Each defaults to 1.0 and is independently settable/resettable.
type Multipliers struct {
	Streak float64 `json:"streak"`
	Event  float64 `json:"event"`
	Job    float64 `json:"job"`
}

// DefaultMultipliers returns all slots at their neutral value.
func DefaultMultipliers() Multipliers {
	return Multipliers{Streak: 1.0, Event: 1.0, Job: 1.0}
}

// JobRecord is one append-only entry in the career history.
type JobRecord struct {
	Job        string    `json:"job"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// LifetimeStats accumulates counters the achievement predicates read.
type LifetimeStats struct {
	TotalPointsEarned    float64 `json:"total_points_earned"`
	TasksCompleted       int     `json:"tasks_completed"`
	MaxStreak            int     `json:"max_streak"`
	AchievementsUnlocked int     `json:"achievements_unlocked"`
}

// UserState is the single mutable progression state for a session.
// All time-gated logic compares stored timestamps against wall-clock time
// at cycle start; nothing here is driven by timers.
type UserState struct {
	Attributes map[string]float64 `json:"attributes"`

	// Streak counts consecutive active days. LastCompletion tracks the
	// most recent task completion so the ledger bumps the streak only on
	// the first completion of a new calendar day.
	Streak         int       `json:"streak"`
	LastCompletion time.Time `json:"last_completion,omitzero"`
	LastActive     time.Time `json:"last_active"`

	Multipliers          Multipliers        `json:"multipliers"`
	AttributeMultipliers map[string]float64 `json:"attribute_multipliers,omitempty"`

	CompletedAchievements []string                  `json:"completed_achievements"`
	Chains                map[string]*ChainProgress `json:"chains"`

	ActiveEvents   []EventInstance `json:"active_events"`
	EventHistory   []EventInstance `json:"event_history"`
	LastEventCheck time.Time       `json:"last_event_check"`

	CurrentJob string      `json:"current_job,omitempty"`
	JobHistory []JobRecord `json:"job_history"`

	// MakeupDeadline is the one-time grace window granted after the first
	// missed day. Zero means no grace is outstanding.
	MakeupDeadline time.Time `json:"makeup_deadline,omitzero"`

	// PenaltyReduction is set by recovery-boost events (0 when inactive).
	PenaltyReduction float64 `json:"penalty_reduction,omitempty"`

	Tasks map[Category]map[string]*Task `json:"tasks"`
	Stats LifetimeStats                 `json:"stats"`

	// Periodic reset checkpoints: daily tasks reopen each calendar day,
	// weekly tasks each ISO week.
	LastDailyReset  time.Time `json:"last_daily_reset,omitzero"`
	LastWeeklyReset time.Time `json:"last_weekly_reset,omitzero"`
}

// NewUserState returns the first-run default state: all attributes 0,
// streak 0, empty collections, every multiplier 1.0.
func NewUserState(now time.Time) *UserState {
	attrs := make(map[string]float64, 6)
	for _, a := range AttributeNames() {
		attrs[a] = 0
	}
	return &UserState{
		Attributes:     attrs,
		Multipliers:    DefaultMultipliers(),
		LastActive:     now,
		LastEventCheck: now,
		Chains:         make(map[string]*ChainProgress),
		Tasks: map[Category]map[string]*Task{
			CategoryDaily:   {},
			CategoryWeekly:  {},
			CategorySpecial: {},
		},
	}
}

// Normalize repairs holes in a state loaded from an older snapshot:
// missing attributes, zero multiplier slots, nil collections.
func (s *UserState) Normalize() {
	if s.Attributes == nil {
		s.Attributes = make(map[string]float64, 6)
	}
	for _, a := range AttributeNames() {
		if _, ok := s.Attributes[a]; !ok {
			s.Attributes[a] = 0
		}
	}
	if s.Multipliers.Streak == 0 {
		s.Multipliers.Streak = 1.0
	}
	if s.Multipliers.Event == 0 {
		s.Multipliers.Event = 1.0
	}
	if s.Multipliers.Job == 0 {
		s.Multipliers.Job = 1.0
	}
	if s.Chains == nil {
		s.Chains = make(map[string]*ChainProgress)
	}
	if s.Tasks == nil {
		s.Tasks = make(map[Category]map[string]*Task)
	}
	for _, c := range Categories() {
		if s.Tasks[c] == nil {
			s.Tasks[c] = make(map[string]*Task)
		}
	}
}

// AddPoints adds delta to one attribute, clamping the result at zero.
func (s *UserState) AddPoints(attribute string, delta float64) {
	v := s.Attributes[attribute] + delta
	if v < 0 {
		v = 0
	}
	s.Attributes[attribute] = v
}

// HighestAttribute returns the attribute with the largest value.
// Ties resolve in display order.
func (s *UserState) HighestAttribute() string {
	best := AttributeNames()[0]
	for _, a := range AttributeNames() {
		if s.Attributes[a] > s.Attributes[best] {
			best = a
		}
	}
	return best
}

// TaskTotals returns (total, completed) counts across the given categories.
func (s *UserState) TaskTotals(categories ...Category) (int, int) {
	if len(categories) == 0 {
		categories = Categories()
	}
	var total, done int
	for _, c := range categories {
		for _, t := range s.Tasks[c] {
			total++
			if t.Completed {
				done++
			}
		}
	}
	return total, done
}

// HasIncompleteTasks reports whether any task in any category is pending.
func (s *UserState) HasIncompleteTasks() bool {
	total, done := s.TaskTotals()
	return total > done
}

// Snapshot extracts the read-only view that condition predicates evaluate.
func (s *UserState) Snapshot() Snapshot {
	attrs := make(map[string]float64, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	total, done := s.TaskTotals(CategoryDaily, CategoryWeekly)
	rate := 0.0
	if total > 0 {
		rate = float64(done) / float64(total)
	}
	return Snapshot{
		Attributes:     attrs,
		Streak:         s.Streak,
		TasksCompleted: s.Stats.TasksCompleted,
		CompletionRate: rate,
	}
}
