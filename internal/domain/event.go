package domain

import "time"

// EventType splits events into passive modifiers and challenges.
type EventType string

const (
	EventPositive  EventType = "positive"
	EventChallenge EventType = "challenge"
	EventRecovery  EventType = "recovery"
)

// EffectKind names the multiplier slot an event effect installs into.
type EffectKind string

const (
	EffectPointMultiplier   EffectKind = "point_multiplier"     // multipliers.event
	EffectAttributeBoost    EffectKind = "attribute_boost"      // attributeMultipliers[attr]
	EffectAllAttributeBoost EffectKind = "all_attributes_boost" // attributeMultipliers[*]
	EffectStreakMultiplier  EffectKind = "streak_multiplier"    // folds into multipliers.event
	EffectRecoveryBoost     EffectKind = "recovery_boost"       // penalty reduction
)

// Effect is one multiplier override an active event contributes.
// Attribute is set only for single-attribute boosts.
type Effect struct {
	Kind      EffectKind `json:"kind"`
	Attribute string     `json:"attribute,omitempty"`
	Factor    float64    `json:"factor"`
}

// ChallengeCheckKind identifies how a challenge event resolves at expiry.
type ChallengeCheckKind string

const (
	CheckAllDailyDone   ChallengeCheckKind = "all_daily_done"
	CheckAllDailyWithin ChallengeCheckKind = "all_daily_within" // within WindowHours
)

// ChallengeCheck is the completion predicate evaluated when a
// challenge-typed event expires.
type ChallengeCheck struct {
	Kind        ChallengeCheckKind `json:"kind,omitempty"`
	WindowHours int                `json:"window_hours,omitempty"`
}

// ChallengePenalty is applied when a challenge resolves as a failure.
type ChallengePenalty struct {
	StreakReduction int     `json:"streak_reduction,omitempty"`
	PointReduction  float64 `json:"point_reduction,omitempty"` // debited from every attribute
}

// EventCondition gates a dynamically generated event's bonus outcome.
type EventCondition struct {
	Family      string  `json:"family"` // time_based, streak_based, performance_based
	Key         string  `json:"key"`
	Attribute   string  `json:"attribute,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
	Description string  `json:"description"`
}

// BonusChallenge is the optional extra objective attached to ~30% of
// dynamic events. Baseline captures the tracked value at trigger time so
// progress during the event window is measurable at expiry.
type BonusChallenge struct {
	Type        string  `json:"type"` // task_streak, attribute_gain, perfect_timing
	Description string  `json:"description"`
	Attribute   string  `json:"attribute,omitempty"`
	Count       float64 `json:"count,omitempty"`
	Baseline    float64 `json:"baseline,omitempty"`
}

// EventDef is one static catalog entry. TriggerChance is the per-hourly-tick
// base probability before situational scaling.
type EventDef struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Icon           string           `json:"icon"`
	Rarity         Rarity           `json:"rarity"`
	Type           EventType        `json:"type"`
	DurationHours  int              `json:"duration_hours"`
	TriggerChance  float64          `json:"trigger_chance"`
	Effects        []Effect         `json:"effects,omitempty"`
	Check          ChallengeCheck   `json:"check,omitzero"`
	SuccessReward  Reward           `json:"success_reward,omitzero"`
	FailurePenalty ChallengePenalty `json:"failure_penalty,omitzero"`
}

// Outcome values recorded when an event is archived.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeExpired = "expired"
)

// EventInstance is a live or archived occurrence of an event. Instances are
// self-contained so dynamic events need no catalog lookup.
type EventInstance struct {
	ID            string    `json:"id"`
	DefID         string    `json:"def_id"` // catalog id, or "dynamic"
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	Rarity        Rarity    `json:"rarity"`
	Type          EventType `json:"type"`
	StartTime     time.Time `json:"start_time"`
	DurationHours int       `json:"duration_hours"`

	Effects        []Effect         `json:"effects,omitempty"`
	Check          ChallengeCheck   `json:"check,omitzero"`
	SuccessReward  Reward           `json:"success_reward,omitzero"`
	FailurePenalty ChallengePenalty `json:"failure_penalty,omitzero"`

	Condition   *EventCondition `json:"condition,omitempty"`
	Challenge   *BonusChallenge `json:"challenge,omitempty"`
	BonusReward Reward          `json:"bonus_reward,omitzero"`

	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
	Outcome     string    `json:"outcome,omitempty"`
}

// ExpiresAt returns the instant the event leaves activeEvents.
func (e EventInstance) ExpiresAt() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationHours) * time.Hour)
}

// Expired reports whether the event's window has closed at now.
func (e EventInstance) Expired(now time.Time) bool {
	return !e.ExpiresAt().After(now)
}
