package events

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
)

// DynamicDefID marks instances produced by the generator rather than the
// static catalog.
const DynamicDefID = "dynamic"

// Bonus challenge types attached to some generated events.
const (
	BonusTaskStreak    = "task_streak"
	BonusAttributeGain = "attribute_gain"
	BonusPerfectTiming = "perfect_timing"
)

// bonusChallengeChance is the probability a generated event carries an
// extra objective with a rarity-scaled reward.
const bonusChallengeChance = 0.3

var namePrefixes = []string{
	"Mystic", "Golden", "Shadow", "Crystal", "Thunder",
	"Frozen", "Blazing", "Cosmic", "Silent", "Radiant",
}

var nameCores = []string{
	"Surge", "Blessing", "Trial", "Fortune", "Awakening",
	"Storm", "Harmony", "Momentum", "Resonance", "Tide",
}

var eventIcons = []string{"✨", "🌙", "☄️", "🔮", "🌊", "🌋", "🌀", "💎"}

// durationChoices are the allowed windows for generated events, in hours.
var durationChoices = []int{1, 3, 6, 12, 24}

// rarityWeights drives the weighted rarity draw. Legendary is the rarest
// a generated event can be; Mythical is reserved for chains.
var rarityWeights = []struct {
	rarity domain.Rarity
	weight int
}{
	{domain.RarityCommon, 50},
	{domain.RarityUncommon, 30},
	{domain.RarityRare, 15},
	{domain.RarityEpic, 4},
	{domain.RarityLegendary, 1},
}

// rarityScale feeds bonus reward sizing.
var rarityScale = map[domain.Rarity]float64{
	domain.RarityCommon:    1,
	domain.RarityUncommon:  1.5,
	domain.RarityRare:      2,
	domain.RarityEpic:      3,
	domain.RarityLegendary: 5,
}

// effectRange is the magnitude window for one generated effect kind,
// expressed as boost percentages.
type effectRange struct {
	kind   domain.EffectKind
	minPct int
	maxPct int
	all    bool
}

var effectChoices = []effectRange{
	{kind: domain.EffectAttributeBoost, minPct: 20, maxPct: 100},
	{kind: domain.EffectAttributeBoost, minPct: 10, maxPct: 50, all: true},
	{kind: domain.EffectPointMultiplier, minPct: 25, maxPct: 75},
	{kind: domain.EffectStreakMultiplier, minPct: 15, maxPct: 60},
	{kind: domain.EffectRecoveryBoost, minPct: 20, maxPct: 50},
}

// Generator composes novel events from weighted parts: a name, one effect
// with a rolled magnitude, an activation condition, a duration, and a
// rarity that scales the optional bonus reward.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator over a shared random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate rolls one dynamic event for the current state. The second
// return is false when the rolled activation condition does not hold, in
// which case the event is discarded rather than installed dormant.
func (g *Generator) Generate(st *domain.UserState, now time.Time) (domain.EventInstance, bool) {
	cond := g.rollCondition(st, now)
	if cond != nil && !g.conditionHolds(st, *cond, now) {
		return domain.EventInstance{}, false
	}

	rarity := g.rollRarity()
	effect, effectDesc := g.rollEffect()
	name := fmt.Sprintf("%s %s",
		namePrefixes[g.rng.Intn(len(namePrefixes))],
		nameCores[g.rng.Intn(len(nameCores))])

	inst := domain.EventInstance{
		DefID:         DynamicDefID,
		Name:          name,
		Description:   effectDesc,
		Icon:          eventIcons[g.rng.Intn(len(eventIcons))],
		Rarity:        rarity,
		Type:          domain.EventPositive,
		StartTime:     now,
		DurationHours: durationChoices[g.rng.Intn(len(durationChoices))],
		Effects:       []domain.Effect{effect},
		Condition:     cond,
	}
	if effect.Kind == domain.EffectRecoveryBoost {
		inst.Type = domain.EventRecovery
	}

	if g.rng.Float64() < bonusChallengeChance {
		inst.Challenge = g.rollChallenge(st)
		scale := rarityScale[rarity]
		inst.BonusReward = domain.Reward{
			AllAttributes: 10 * scale,
			StreakBonus:   0.1 * scale,
		}
	}
	return inst, true
}

// rollRarity draws a rarity from the weighted table.
func (g *Generator) rollRarity() domain.Rarity {
	total := 0
	for _, rw := range rarityWeights {
		total += rw.weight
	}
	n := g.rng.Intn(total)
	for _, rw := range rarityWeights {
		if n < rw.weight {
			return rw.rarity
		}
		n -= rw.weight
	}
	return domain.RarityCommon
}

// rollEffect draws an effect kind and magnitude. Percentages become
// multiplier factors for boost kinds and a reduction fraction for
// recovery boosts.
func (g *Generator) rollEffect() (domain.Effect, string) {
	choice := effectChoices[g.rng.Intn(len(effectChoices))]
	pct := choice.minPct + g.rng.Intn(choice.maxPct-choice.minPct+1)

	switch {
	case choice.kind == domain.EffectRecoveryBoost:
		return domain.Effect{Kind: choice.kind, Factor: float64(pct) / 100},
			fmt.Sprintf("Inactivity penalties reduced by %d%%", pct)
	case choice.kind == domain.EffectAttributeBoost && choice.all:
		return domain.Effect{Kind: domain.EffectAllAttributeBoost, Factor: 1 + float64(pct)/100},
			fmt.Sprintf("All attributes earn %d%% more", pct)
	case choice.kind == domain.EffectAttributeBoost:
		attrs := domain.AttributeNames()
		attr := attrs[g.rng.Intn(len(attrs))]
		return domain.Effect{Kind: choice.kind, Attribute: attr, Factor: 1 + float64(pct)/100},
			fmt.Sprintf("%s earns %d%% more", attr, pct)
	case choice.kind == domain.EffectStreakMultiplier:
		return domain.Effect{Kind: choice.kind, Factor: 1 + float64(pct)/100},
			fmt.Sprintf("Streak momentum boosts rewards by %d%%", pct)
	default:
		return domain.Effect{Kind: domain.EffectPointMultiplier, Factor: 1 + float64(pct)/100},
			fmt.Sprintf("Task rewards boosted by %d%%", pct)
	}
}

// rollCondition draws an activation condition, or nil for unconditional
// events.
func (g *Generator) rollCondition(st *domain.UserState, now time.Time) *domain.EventCondition {
	switch g.rng.Intn(4) {
	case 0:
		periods := []string{"morning", "afternoon", "evening", "night"}
		p := periods[g.rng.Intn(len(periods))]
		return &domain.EventCondition{
			Family:      "time_based",
			Key:         p,
			Description: fmt.Sprintf("Active during the %s", p),
		}
	case 1:
		days := []int{3, 5, 7, 14}[g.rng.Intn(4)]
		return &domain.EventCondition{
			Family:      "streak_based",
			Threshold:   float64(days),
			Description: fmt.Sprintf("Requires a %d-day streak", days),
		}
	case 2:
		rate := []float64{0.5, 0.7, 0.9}[g.rng.Intn(3)]
		return &domain.EventCondition{
			Family:      "performance_based",
			Threshold:   rate,
			Description: fmt.Sprintf("Requires %.0f%% task completion", rate*100),
		}
	default:
		return nil
	}
}

// conditionHolds evaluates an activation condition at trigger time.
func (g *Generator) conditionHolds(st *domain.UserState, c domain.EventCondition, now time.Time) bool {
	switch c.Family {
	case "time_based":
		h := now.Hour()
		switch c.Key {
		case "morning":
			return h >= 5 && h < 12
		case "afternoon":
			return h >= 12 && h < 17
		case "evening":
			return h >= 17 && h < 22
		case "night":
			return h >= 22 || h < 5
		}
		return false
	case "streak_based":
		return float64(st.Streak) >= c.Threshold
	case "performance_based":
		return st.Snapshot().CompletionRate >= c.Threshold
	}
	return true
}

// rollChallenge draws a bonus objective and captures its baseline.
func (g *Generator) rollChallenge(st *domain.UserState) *domain.BonusChallenge {
	switch g.rng.Intn(3) {
	case 0:
		n := 3 + g.rng.Intn(3)
		return &domain.BonusChallenge{
			Type:        BonusTaskStreak,
			Description: fmt.Sprintf("Complete %d tasks while this event is active", n),
			Count:       float64(n),
			Baseline:    float64(st.Stats.TasksCompleted),
		}
	case 1:
		attrs := domain.AttributeNames()
		attr := attrs[g.rng.Intn(len(attrs))]
		pts := float64(10 + g.rng.Intn(21))
		return &domain.BonusChallenge{
			Type:        BonusAttributeGain,
			Description: fmt.Sprintf("Gain %.0f %s points while this event is active", pts, attr),
			Attribute:   attr,
			Count:       pts,
			Baseline:    st.Attributes[attr],
		}
	default:
		return &domain.BonusChallenge{
			Type:        BonusPerfectTiming,
			Description: "Finish every daily task before this event ends",
		}
	}
}
