package domain

import "time"

// Rarity grades catalog entries for display and dynamic-event weighting.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythical  Rarity = "Mythical"
)

// AchievementDef is one immutable catalog entry. Only the completed set on
// UserState mutates; definitions never change at runtime.
type AchievementDef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Rarity      Rarity    `json:"rarity"`
	Condition   Condition `json:"condition"`
	Reward      Reward    `json:"reward"`
}

// ChainStage is one step in an ordered unlock sequence.
type ChainStage struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Reward      Reward    `json:"reward"`
}

// ChainDef is an immutable multi-stage achievement chain. Stages unlock
// strictly in order; later stages are never checked before earlier ones.
type ChainDef struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Rarity      Rarity       `json:"rarity"`
	Stages      []ChainStage `json:"stages"`
}

// ChainProgress tracks per-chain advancement inside UserState.
// CurrentStage only increases; a chain is immutable once Completed.
type ChainProgress struct {
	CurrentStage int       `json:"current_stage"`
	Completed    bool      `json:"completed"`
	StartedAt    time.Time `json:"started_at,omitzero"`
	CompletedAt  time.Time `json:"completed_at,omitzero"`
}
