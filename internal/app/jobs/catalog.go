// Package jobs implements career progression: a fixed catalog gated on
// attribute requirements, and acceptance that installs the job's perk
// multiplier.
package jobs

import "github.com/zero2one-app/zero2one/internal/domain"

// Catalog returns the fixed job definitions, ordered by tier.
func Catalog() []domain.JobDef {
	return []domain.JobDef{
		// ── Low tier (E–D rank) ────────────────────────────────────────
		{
			Name: "Master of None", RankRequirement: "E", Tier: domain.TierLow, Icon: "❓",
			Description:    "One who has yet to find their path.",
			Perk:           "No perks yet...",
			PerkMultiplier: 1.0,
		},
		{
			Name: "Stray Dog", RankRequirement: "E", Tier: domain.TierLow, Icon: "🐕",
			Description:    "Surviving through instinct and determination.",
			Perk:           "Resilience tasks give +10% more points.",
			PerkMultiplier: 1.1,
			Requirements:   map[string]float64{domain.AttrResilience: 50},
		},
		{
			Name: "Pugilist", RankRequirement: "D", Tier: domain.TierLow, Icon: "🥊",
			Description:    "Street fighter learning the ways of combat.",
			Perk:           "Physical tasks give +15% more points.",
			PerkMultiplier: 1.15,
			Requirements:   map[string]float64{domain.AttrPhysical: 85, domain.AttrResilience: 50},
		},
		{
			Name: "Swindler", RankRequirement: "D", Tier: domain.TierLow, Icon: "🎭",
			Description:    "Master of deception and quick wit.",
			Perk:           "Intelligence tasks give +15% more points.",
			PerkMultiplier: 1.15,
			Requirements:   map[string]float64{domain.AttrIntelligence: 85, domain.AttrCreativity: 50},
		},
		{
			Name: "Apprentice", RankRequirement: "D", Tier: domain.TierLow, Icon: "📚",
			Description:    "Beginning the path of knowledge.",
			Perk:           "Learning tasks give +15% more points.",
			PerkMultiplier: 1.15,
			Requirements:   map[string]float64{domain.AttrIntelligence: 85},
		},

		// ── Mid tier (C rank) ──────────────────────────────────────────
		{
			Name: "Duelist", RankRequirement: "C", Tier: domain.TierMid, Icon: "⚔️",
			Description:    "Skilled fighter specializing in one-on-one combat.",
			Perk:           "Combat tasks give +20% more points.",
			PerkMultiplier: 1.2,
			Requirements:   map[string]float64{domain.AttrPhysical: 170, domain.AttrResilience: 85},
		},
		{
			Name: "Phantom Jester", RankRequirement: "C", Tier: domain.TierMid, Icon: "🃏",
			Description:    "Mystifying performer of the supernatural.",
			Perk:           "Creative tasks give +20% more points.",
			PerkMultiplier: 1.2,
			Requirements:   map[string]float64{domain.AttrCreativity: 170, domain.AttrSpiritual: 85},
		},
		{
			Name: "Marksman", RankRequirement: "C", Tier: domain.TierMid, Icon: "🎯",
			Description:    "Precision shooter with deadly accuracy.",
			Perk:           "Precision tasks give +20% more points.",
			PerkMultiplier: 1.2,
			Requirements:   map[string]float64{domain.AttrPhysical: 170, domain.AttrIntelligence: 85},
		},
		{
			Name: "Nomad", RankRequirement: "C", Tier: domain.TierMid, Icon: "🌎",
			Description:    "Wandering soul seeking truth.",
			Perk:           "Exploration tasks give +20% more points.",
			PerkMultiplier: 1.2,
			Requirements:   map[string]float64{domain.AttrResilience: 170, domain.AttrSpiritual: 85},
		},
		{
			Name: "Shaman", RankRequirement: "C", Tier: domain.TierMid, Icon: "🕯️",
			Description:    "Speaker to spirits and natural forces.",
			Perk:           "Spiritual tasks give +25% more points.",
			PerkMultiplier: 1.25,
			Requirements:   map[string]float64{domain.AttrSpiritual: 170, domain.AttrIntelligence: 85},
		},

		// ── Advanced tier (B rank) ─────────────────────────────────────
		{
			Name: "Iron Sentinel", RankRequirement: "B", Tier: domain.TierAdvanced, Icon: "🛡️",
			Description:    "Unbreakable guardian of order.",
			Perk:           "Defense tasks give +30% more points.",
			PerkMultiplier: 1.3,
			Requirements:   map[string]float64{domain.AttrPhysical: 255, domain.AttrResilience: 170},
		},
		{
			Name: "Shade Operative", RankRequirement: "B", Tier: domain.TierAdvanced, Icon: "🕴️",
			Description:    "Elite agent working in the shadows.",
			Perk:           "Stealth tasks give +30% more points.",
			PerkMultiplier: 1.3,
			Requirements:   map[string]float64{domain.AttrIntelligence: 255, domain.AttrPhysical: 170},
		},
		{
			Name: "Revenant", RankRequirement: "B", Tier: domain.TierAdvanced, Icon: "👻",
			Description:    "One who has returned from the brink.",
			Perk:           "Recovery tasks give +30% more points.",
			PerkMultiplier: 1.3,
			Requirements:   map[string]float64{domain.AttrSpiritual: 255, domain.AttrResilience: 170},
		},
		{
			Name: "Battle Hound", RankRequirement: "B", Tier: domain.TierAdvanced, Icon: "🐺",
			Description:    "Warrior with bestial instincts.",
			Perk:           "Combat tasks give +35% more points.",
			PerkMultiplier: 1.35,
			Requirements:   map[string]float64{domain.AttrPhysical: 255, domain.AttrSpiritual: 170},
		},

		// ── Elite tier (A rank) ────────────────────────────────────────
		{
			Name: "Order Member", RankRequirement: "A", Tier: domain.TierElite, Icon: "⭐",
			Description:    "Elite member of a secret organization.",
			Perk:           "All attributes gain +40% more points.",
			PerkMultiplier: 1.4,
			Requirements: map[string]float64{
				domain.AttrIntelligence: 340,
				domain.AttrSpiritual:    255,
				domain.AttrResilience:   170,
			},
		},
		{
			Name: "Elite Assassin", RankRequirement: "A", Tier: domain.TierElite, Icon: "🗡️",
			Description:    "Master of the deadly arts.",
			Perk:           "Assassination tasks give +45% more points.",
			PerkMultiplier: 1.45,
			Requirements: map[string]float64{
				domain.AttrPhysical:     340,
				domain.AttrIntelligence: 255,
				domain.AttrResilience:   170,
			},
		},
		{
			Name: "Shadow Puppeteer", RankRequirement: "A", Tier: domain.TierElite, Icon: "🎭",
			Description:    "Master manipulator of shadows and minds.",
			Perk:           "Control tasks give +45% more points.",
			PerkMultiplier: 1.45,
			Requirements: map[string]float64{
				domain.AttrCreativity:   340,
				domain.AttrSpiritual:    255,
				domain.AttrIntelligence: 170,
			},
		},

		// ── Special tier (S rank) ──────────────────────────────────────
		{
			Name: "The Glitch", RankRequirement: "S", Tier: domain.TierSpecial, Icon: "🌟",
			Description:    "One who has transcended normal limitations.",
			Perk:           "All tasks give +50% more points.",
			PerkMultiplier: 1.5,
			Requirements: map[string]float64{
				domain.AttrIntelligence: 425,
				domain.AttrCreativity:   425,
				domain.AttrSpiritual:    340,
			},
		},
		{
			Name: "Enigma", RankRequirement: "S", Tier: domain.TierSpecial, Icon: "✨",
			Description:    "A being of infinite possibilities.",
			Perk:           "All attributes gain +60% more points.",
			PerkMultiplier: 1.6,
			Requirements: map[string]float64{
				domain.AttrSpiritual:    425,
				domain.AttrIntelligence: 425,
				domain.AttrResilience:   340,
				domain.AttrCreativity:   340,
			},
		},
	}
}

// TierLabels maps tiers to their display headings.
func TierLabels() map[domain.JobTier]string {
	return map[domain.JobTier]string{
		domain.TierLow:      "Low-Tier Jobs (E-D Rank)",
		domain.TierMid:      "Mid-Tier Jobs (C Rank)",
		domain.TierAdvanced: "Advanced Jobs (B Rank)",
		domain.TierElite:    "Elite Jobs (A Rank)",
		domain.TierSpecial:  "Special Jobs (S Rank)",
	}
}
