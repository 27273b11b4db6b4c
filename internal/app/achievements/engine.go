package achievements

import (
	"fmt"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
)

// Engine evaluates one-shot achievements. Unlocks are monotonic: once an
// id enters CompletedAchievements it is never re-evaluated, so a streak
// that later drops below a threshold keeps the unlock and its reward.
type Engine struct {
	defs     []domain.AchievementDef
	notifier domain.Notifier
}

// NewEngine creates an achievement engine over the fixed catalog.
func NewEngine(notifier domain.Notifier) *Engine {
	return &Engine{defs: Catalog(), notifier: notifier}
}

// Evaluate checks every locked achievement against the current state and
// unlocks those whose condition holds, applying rewards immediately.
// Returns the definitions unlocked during this pass.
func (e *Engine) Evaluate(st *domain.UserState) []domain.AchievementDef {
	done := make(map[string]bool, len(st.CompletedAchievements))
	for _, id := range st.CompletedAchievements {
		done[id] = true
	}

	var unlocked []domain.AchievementDef
	snap := st.Snapshot()
	for _, def := range e.defs {
		if done[def.ID] || !def.Condition.Met(snap) {
			continue
		}
		st.CompletedAchievements = append(st.CompletedAchievements, def.ID)
		st.Stats.AchievementsUnlocked++
		st.ApplyReward(def.Reward)
		unlocked = append(unlocked, def)

		metrics.AchievementsUnlocked.Inc()
		e.notifier.Notify(domain.Notification{
			Type:  domain.NotifyAchievement,
			Title: fmt.Sprintf("%s %s unlocked", def.Icon, def.Name),
			Body:  def.Description,
		})
	}
	return unlocked
}

// ChainEngine advances achievement chains. Stages are strictly sequential
// and at most one stage per chain completes per evaluation, even when the
// state already satisfies later stages.
type ChainEngine struct {
	defs     []domain.ChainDef
	now      func() time.Time
	notifier domain.Notifier
}

// NewChainEngine creates a chain engine over the fixed chain catalog.
func NewChainEngine(notifier domain.Notifier) *ChainEngine {
	return &ChainEngine{defs: Chains(), now: time.Now, notifier: notifier}
}

// NewChainEngineAt creates a chain engine with an injected clock for tests.
func NewChainEngineAt(notifier domain.Notifier, now func() time.Time) *ChainEngine {
	ce := NewChainEngine(notifier)
	ce.now = now
	return ce
}

// StageAdvance reports one chain stage completed during an evaluation.
type StageAdvance struct {
	Chain domain.ChainDef
	Stage domain.ChainStage
	Index int
	Final bool
}

// Evaluate checks the current stage of every unfinished chain and advances
// the ones whose condition holds. Returns the stages completed this pass.
func (ce *ChainEngine) Evaluate(st *domain.UserState) []StageAdvance {
	var advanced []StageAdvance
	snap := st.Snapshot()
	now := ce.now()

	for _, def := range ce.defs {
		prog := st.Chains[def.ID]
		if prog == nil {
			prog = &domain.ChainProgress{StartedAt: now}
			st.Chains[def.ID] = prog
		}
		if prog.Completed {
			continue
		}

		idx := prog.CurrentStage
		stage := def.Stages[idx]
		if !stage.Condition.Met(snap) {
			continue
		}

		st.ApplyReward(stage.Reward)
		prog.CurrentStage++
		final := prog.CurrentStage >= len(def.Stages)
		if final {
			prog.Completed = true
			prog.CompletedAt = now
		}
		advanced = append(advanced, StageAdvance{Chain: def, Stage: stage, Index: idx, Final: final})

		metrics.ChainStagesCompleted.WithLabelValues(def.ID).Inc()
		title := fmt.Sprintf("%s %s: %s", def.Icon, def.Name, stage.Name)
		if final {
			title = fmt.Sprintf("%s %s complete", def.Icon, def.Name)
		}
		ce.notifier.Notify(domain.Notification{
			Type:  domain.NotifyChainStage,
			Title: title,
			Body:  stage.Description,
		})
	}
	return advanced
}
