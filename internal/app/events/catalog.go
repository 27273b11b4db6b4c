// Package events runs the timed-event system: a static catalog of
// hourly-checked random events, a dynamic event generator, effect
// installation into the multiplier slots, and expiry resolution.
package events

import "github.com/zero2one-app/zero2one/internal/domain"

// Catalog returns the fixed event definitions. TriggerChance is the base
// per-tick probability before situational scaling.
func Catalog() []domain.EventDef {
	return []domain.EventDef{
		// ── Positive modifiers ─────────────────────────────────────────
		{
			ID: "double_points", Name: "Double Points", Icon: "✨", Rarity: domain.RarityUncommon,
			Description:   "All task rewards are doubled",
			Type:          domain.EventPositive,
			DurationHours: 24, TriggerChance: 0.10,
			Effects: []domain.Effect{{Kind: domain.EffectPointMultiplier, Factor: 2.0}},
		},
		{
			ID: "attribute_surge", Name: "Attribute Surge", Icon: "⚡", Rarity: domain.RarityUncommon,
			Description:   "One attribute earns boosted rewards",
			Type:          domain.EventPositive,
			DurationHours: 12, TriggerChance: 0.05,
			// Attribute is picked at trigger time.
			Effects: []domain.Effect{{Kind: domain.EffectAttributeBoost, Factor: 1.5}},
		},
		{
			ID: "golden_hour", Name: "Golden Hour", Icon: "🌟", Rarity: domain.RarityRare,
			Description:   "Every attribute earns double rewards for one hour",
			Type:          domain.EventPositive,
			DurationHours: 1, TriggerChance: 0.02,
			Effects: []domain.Effect{{Kind: domain.EffectAllAttributeBoost, Factor: 2.0}},
		},
		{
			ID: "streak_power", Name: "Streak Power", Icon: "🔥", Rarity: domain.RarityRare,
			Description:   "Streak momentum doubles your rewards",
			Type:          domain.EventPositive,
			DurationHours: 24, TriggerChance: 0.01,
			Effects: []domain.Effect{{Kind: domain.EffectStreakMultiplier, Factor: 2.0}},
		},

		// ── Challenges ─────────────────────────────────────────────────
		{
			ID: "perfect_day", Name: "Perfect Day", Icon: "🎯", Rarity: domain.RarityRare,
			Description:   "Complete all daily tasks before the day ends",
			Type:          domain.EventChallenge,
			DurationHours: 24, TriggerChance: 0.05,
			Check:          domain.ChallengeCheck{Kind: domain.CheckAllDailyDone},
			SuccessReward:  domain.Reward{AllAttributes: 5, StreakDays: 1},
			FailurePenalty: domain.ChallengePenalty{StreakReduction: 1},
		},
		{
			ID: "speed_runner", Name: "Speed Runner", Icon: "🏃", Rarity: domain.RarityEpic,
			Description:   "Complete all daily tasks within six hours",
			Type:          domain.EventChallenge,
			DurationHours: 6, TriggerChance: 0.03,
			Check:          domain.ChallengeCheck{Kind: domain.CheckAllDailyWithin, WindowHours: 6},
			SuccessReward:  domain.Reward{AllAttributes: 10, PointMultiplier: 2.0},
			FailurePenalty: domain.ChallengePenalty{PointReduction: 5},
		},
	}
}
