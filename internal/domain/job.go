package domain

// JobTier groups jobs for display.
type JobTier string

const (
	TierLow      JobTier = "low"
	TierMid      JobTier = "mid"
	TierAdvanced JobTier = "advanced"
	TierElite    JobTier = "elite"
	TierSpecial  JobTier = "special"
)

// JobDef is one immutable career catalog entry. A job is available when
// every attribute requirement is met; an empty requirement set is always
// satisfied. Accepting a job overwrites the job multiplier slot with
// PerkMultiplier — perks replace, never stack.
type JobDef struct {
	Name            string             `json:"name"`
	RankRequirement string             `json:"rank_requirement"`
	Description     string             `json:"description"`
	Perk            string             `json:"perk"`
	PerkMultiplier  float64            `json:"perk_multiplier"`
	Tier            JobTier            `json:"tier"`
	Icon            string             `json:"icon"`
	Requirements    map[string]float64 `json:"attribute_requirements"`
}
