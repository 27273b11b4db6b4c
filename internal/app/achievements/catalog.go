// Package achievements implements the one-shot achievement engine and the
// ordered achievement-chain engine. Catalogs are immutable; only the
// completed set and per-chain progress inside UserState mutate.
package achievements

import "github.com/zero2one-app/zero2one/internal/domain"

// Catalog returns the fixed achievement definitions. Unlock conditions are
// tagged data variants, not code.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Task achievements ──────────────────────────────────────────
		{
			ID: "first_step", Name: "First Step", Icon: "🎯", Rarity: domain.RarityCommon,
			Description: "Complete your first task",
			Condition:   domain.TasksCompletedAtLeast(1),
			Reward:      domain.Reward{AllAttributes: 1},
		},
		{
			ID: "task_master", Name: "Task Master", Icon: "✨", Rarity: domain.RarityUncommon,
			Description: "Complete 50 tasks",
			Condition:   domain.TasksCompletedAtLeast(50),
			Reward:      domain.Reward{AllAttributes: 2},
		},
		{
			ID: "centurion", Name: "Centurion", Icon: "💫", Rarity: domain.RarityRare,
			Description: "Complete 100 tasks",
			Condition:   domain.TasksCompletedAtLeast(100),
			Reward:      domain.Reward{AllAttributes: 3},
		},

		// ── Streak achievements ────────────────────────────────────────
		{
			ID: "consistent", Name: "Consistent", Icon: "🔥", Rarity: domain.RarityUncommon,
			Description: "Maintain a 7-day streak",
			Condition:   domain.StreakAtLeast(7),
			Reward:      domain.Reward{StreakMultiplier: 1.2},
		},
		{
			ID: "unstoppable", Name: "Unstoppable", Icon: "⚡", Rarity: domain.RarityRare,
			Description: "Maintain a 30-day streak",
			Condition:   domain.StreakAtLeast(30),
			Reward:      domain.Reward{StreakMultiplier: 1.5},
		},
	}
}

// Chains returns the fixed achievement-chain definitions.
func Chains() []domain.ChainDef {
	return []domain.ChainDef{
		{
			ID: "physical_mastery", Name: "Physical Mastery", Icon: "💪", Rarity: domain.RarityLegendary,
			Description: "Master your physical capabilities",
			Stages: []domain.ChainStage{
				{
					Name:        "Beginner Athlete",
					Description: "Reach 100 Physical points",
					Condition:   domain.AttributeAtLeast(domain.AttrPhysical, 100),
					Reward:      domain.Reward{Attributes: map[string]float64{domain.AttrPhysical: 10}},
				},
				{
					Name:        "Intermediate Athlete",
					Description: "Reach 250 Physical points",
					Condition:   domain.AttributeAtLeast(domain.AttrPhysical, 250),
					Reward: domain.Reward{Attributes: map[string]float64{
						domain.AttrPhysical: 25,
						domain.AttrHealth:   10,
					}},
				},
				{
					Name:        "Advanced Athlete",
					Description: "Reach 500 Physical points",
					Condition:   domain.AttributeAtLeast(domain.AttrPhysical, 500),
					Reward:      domain.Reward{AllAttributes: 20},
				},
			},
		},
		{
			ID: "mind_master", Name: "Mind Master", Icon: "🧠", Rarity: domain.RarityEpic,
			Description: "Develop your mental capabilities",
			Stages: []domain.ChainStage{
				{
					Name:        "Knowledge Seeker",
					Description: "Reach 100 Intelligence points",
					Condition:   domain.AttributeAtLeast(domain.AttrIntelligence, 100),
					Reward:      domain.Reward{Attributes: map[string]float64{domain.AttrIntelligence: 10}},
				},
				{
					Name:        "Scholar",
					Description: "Reach 200 Intelligence and 100 Creativity points",
					Condition: domain.AllOf(
						domain.AttributeAtLeast(domain.AttrIntelligence, 200),
						domain.AttributeAtLeast(domain.AttrCreativity, 100),
					),
					Reward: domain.Reward{Attributes: map[string]float64{
						domain.AttrIntelligence: 20,
						domain.AttrCreativity:   10,
					}},
				},
				{
					Name:        "Sage",
					Description: "Master multiple mental attributes",
					Condition: domain.AllOf(
						domain.AttributeAtLeast(domain.AttrIntelligence, 400),
						domain.AttributeAtLeast(domain.AttrCreativity, 200),
						domain.AttributeAtLeast(domain.AttrSpiritual, 100),
					),
					Reward: domain.Reward{AllAttributes: 25},
				},
			},
		},
		{
			ID: "consistency_king", Name: "Consistency King", Icon: "👑", Rarity: domain.RarityMythical,
			Description: "Master the art of consistency",
			Stages: []domain.ChainStage{
				{
					Name:        "Habit Former",
					Description: "Maintain a 7-day streak",
					Condition:   domain.StreakAtLeast(7),
					Reward:      domain.Reward{StreakMultiplier: 1.1},
				},
				{
					Name:        "Routine Master",
					Description: "30-day streak with 80% task completion",
					Condition: domain.AllOf(
						domain.StreakAtLeast(30),
						domain.CompletionRateAtLeast(0.8),
					),
					Reward: domain.Reward{StreakMultiplier: 1.2},
				},
				{
					Name:        "Living Legend",
					Description: "100-day streak with 90% task completion",
					Condition: domain.AllOf(
						domain.StreakAtLeast(100),
						domain.CompletionRateAtLeast(0.9),
					),
					Reward: domain.Reward{StreakMultiplier: 1.5, AllAttributes: 50},
				},
			},
		},
	}
}
