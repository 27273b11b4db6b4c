package domain

// Snapshot is the read-only view of user state that unlock conditions
// evaluate. Engines derive it once per evaluation pass.
type Snapshot struct {
	Attributes     map[string]float64
	Streak         int
	TasksCompleted int
	CompletionRate float64 // completed / total over daily+weekly, 0 when no tasks
}

// ConditionKind tags the closed set of unlock condition variants.
// Catalogs store conditions as data, not code.
type ConditionKind string

const (
	CondTasksCompleted ConditionKind = "tasks_completed" // TasksCompleted >= Value
	CondStreak         ConditionKind = "streak"          // Streak >= Value
	CondAttribute      ConditionKind = "attribute"       // Attributes[Attribute] >= Value
	CondCompletionRate ConditionKind = "completion_rate" // CompletionRate >= Value
	CondAll            ConditionKind = "all"             // every sub-condition holds
)

// Condition is one tagged unlock predicate. Value carries the threshold
// for every scalar kind; Attribute is set only for CondAttribute.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Attribute string        `json:"attribute,omitempty"`
	Value     float64       `json:"value,omitempty"`
	All       []Condition   `json:"all,omitempty"`
}

// Met evaluates the condition against a snapshot.
func (c Condition) Met(s Snapshot) bool {
	switch c.Kind {
	case CondTasksCompleted:
		return float64(s.TasksCompleted) >= c.Value
	case CondStreak:
		return float64(s.Streak) >= c.Value
	case CondAttribute:
		return s.Attributes[c.Attribute] >= c.Value
	case CondCompletionRate:
		return s.CompletionRate >= c.Value
	case CondAll:
		for _, sub := range c.All {
			if !sub.Met(s) {
				return false
			}
		}
		return true
	}
	return false
}

// Convenience constructors keep catalog definitions terse.

func TasksCompletedAtLeast(n int) Condition {
	return Condition{Kind: CondTasksCompleted, Value: float64(n)}
}

func StreakAtLeast(days int) Condition {
	return Condition{Kind: CondStreak, Value: float64(days)}
}

func AttributeAtLeast(attr string, v float64) Condition {
	return Condition{Kind: CondAttribute, Attribute: attr, Value: v}
}

func CompletionRateAtLeast(rate float64) Condition {
	return Condition{Kind: CondCompletionRate, Value: rate}
}

func AllOf(conds ...Condition) Condition {
	return Condition{Kind: CondAll, All: conds}
}

// Reward describes what an unlock or resolved challenge grants. The
// populated fields are applied in order: flat add to every attribute,
// per-attribute adds, add to the currently-highest attribute, streak-day
// grant, then the multiplier fields.
type Reward struct {
	AllAttributes    float64            `json:"all_attributes,omitempty"`
	Attributes       map[string]float64 `json:"attributes,omitempty"`
	HighestAttribute float64            `json:"highest_attribute,omitempty"`
	StreakDays       int                `json:"streak_days,omitempty"`
	StreakMultiplier float64            `json:"streak_multiplier,omitempty"`

	// StreakBonus adds to the streak multiplier instead of replacing it.
	StreakBonus float64 `json:"streak_bonus,omitempty"`

	// PointMultiplier overwrites the event multiplier slot. It lasts until
	// the next active-event recompute.
	PointMultiplier float64 `json:"point_multiplier,omitempty"`
}

// IsZero reports whether the reward grants nothing.
func (r Reward) IsZero() bool {
	return r.AllAttributes == 0 && len(r.Attributes) == 0 &&
		r.HighestAttribute == 0 && r.StreakDays == 0 &&
		r.StreakMultiplier == 0 && r.StreakBonus == 0 && r.PointMultiplier == 0
}

// ApplyReward mutates the state with everything the reward grants.
func (s *UserState) ApplyReward(r Reward) {
	if r.AllAttributes != 0 {
		for _, a := range AttributeNames() {
			s.AddPoints(a, r.AllAttributes)
		}
	}
	for attr, pts := range r.Attributes {
		if IsAttribute(attr) {
			s.AddPoints(attr, pts)
		}
	}
	if r.HighestAttribute != 0 {
		s.AddPoints(s.HighestAttribute(), r.HighestAttribute)
	}
	if r.StreakDays != 0 {
		s.Streak += r.StreakDays
		if s.Streak < 0 {
			s.Streak = 0
		}
	}
	if r.StreakMultiplier != 0 {
		s.Multipliers.Streak = r.StreakMultiplier
	}
	if r.StreakBonus != 0 {
		s.Multipliers.Streak += r.StreakBonus
	}
	if r.PointMultiplier != 0 {
		s.Multipliers.Event = r.PointMultiplier
	}
}
