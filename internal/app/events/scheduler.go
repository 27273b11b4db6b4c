package events

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
)

// DefaultCheckInterval is the minimum spacing between trigger rolls.
// Expiry sweeps run every cycle regardless.
const DefaultCheckInterval = time.Hour

// DefaultDynamicChance is the per-tick probability of rolling a generated
// event on top of the static catalog.
const DefaultDynamicChance = 0.3

// Situational chance scaling. Recovery events get likelier while a makeup
// window is outstanding; positive events get likelier on clean days.
const (
	recoveryScale = 2.0
	positiveScale = 1.5
)

// Scheduler owns event triggering, effect installation, and expiry
// resolution. One Check call per engine cycle.
type Scheduler struct {
	defs     []domain.EventDef
	gen      *Generator
	now      func() time.Time
	rng      *rand.Rand
	newID    func() string
	notifier domain.Notifier

	CheckInterval time.Duration
	DynamicChance float64
}

// NewScheduler creates a scheduler with wall-clock time and a seeded source.
func NewScheduler(notifier domain.Notifier) *Scheduler {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Scheduler{
		defs:          Catalog(),
		gen:           NewGenerator(rng),
		now:           time.Now,
		rng:           rng,
		newID:         func() string { return uuid.NewString() },
		notifier:      notifier,
		CheckInterval: DefaultCheckInterval,
		DynamicChance: DefaultDynamicChance,
	}
}

// NewSchedulerAt creates a scheduler with injected time and randomness
// for tests.
func NewSchedulerAt(notifier domain.Notifier, now func() time.Time, rng *rand.Rand) *Scheduler {
	s := NewScheduler(notifier)
	s.now = now
	s.rng = rng
	s.gen = NewGenerator(rng)
	return s
}

// Check runs one event cycle: resolve everything expired, then — at most
// once per CheckInterval — roll the static catalog and the dynamic
// generator. Returns the events triggered this pass.
func (s *Scheduler) Check(st *domain.UserState) []domain.EventInstance {
	now := s.now()
	s.resolveExpired(st, now)

	if !st.LastEventCheck.IsZero() && now.Sub(st.LastEventCheck) < s.CheckInterval {
		return nil
	}
	st.LastEventCheck = now

	var triggered []domain.EventInstance
	for _, def := range s.defs {
		if s.isActive(st, def.ID) {
			continue
		}
		if s.rng.Float64() >= s.scaledChance(st, def) {
			continue
		}
		inst := s.instantiate(def, now)
		triggered = append(triggered, inst)
	}

	if s.rng.Float64() < s.DynamicChance {
		if inst, ok := s.gen.Generate(st, now); ok {
			inst.ID = s.newID()
			triggered = append(triggered, inst)
		}
	}

	for _, inst := range triggered {
		st.ActiveEvents = append(st.ActiveEvents, inst)
		source := "static"
		if inst.DefID == DynamicDefID {
			source = "dynamic"
		}
		metrics.EventsTriggered.WithLabelValues(source, string(inst.Rarity)).Inc()
		s.notifier.Notify(domain.Notification{
			Type:  domain.NotifyEvent,
			Title: fmt.Sprintf("%s %s", inst.Icon, inst.Name),
			Body:  inst.Description,
		})
	}
	if len(triggered) > 0 {
		RecomputeEffects(st)
	}
	metrics.ActiveEvents.Set(float64(len(st.ActiveEvents)))
	return triggered
}

// isActive reports whether a catalog event already has a live instance.
func (s *Scheduler) isActive(st *domain.UserState, defID string) bool {
	for _, inst := range st.ActiveEvents {
		if inst.DefID == defID {
			return true
		}
	}
	return false
}

// scaledChance applies situational scaling to a definition's base chance.
func (s *Scheduler) scaledChance(st *domain.UserState, def domain.EventDef) float64 {
	underPenalty := !st.MakeupDeadline.IsZero()
	switch {
	case def.Type == domain.EventRecovery && underPenalty:
		return def.TriggerChance * recoveryScale
	case def.Type == domain.EventPositive && !underPenalty:
		return def.TriggerChance * positiveScale
	}
	return def.TriggerChance
}

// instantiate copies a definition into a live instance, picking a random
// attribute for effects that target one but name none.
func (s *Scheduler) instantiate(def domain.EventDef, now time.Time) domain.EventInstance {
	effects := make([]domain.Effect, len(def.Effects))
	copy(effects, def.Effects)
	for i, ef := range effects {
		if ef.Kind == domain.EffectAttributeBoost && ef.Attribute == "" {
			attrs := domain.AttributeNames()
			effects[i].Attribute = attrs[s.rng.Intn(len(attrs))]
		}
	}
	return domain.EventInstance{
		ID:             s.newID(),
		DefID:          def.ID,
		Name:           def.Name,
		Description:    def.Description,
		Icon:           def.Icon,
		Rarity:         def.Rarity,
		Type:           def.Type,
		StartTime:      now,
		DurationHours:  def.DurationHours,
		Effects:        effects,
		Check:          def.Check,
		SuccessReward:  def.SuccessReward,
		FailurePenalty: def.FailurePenalty,
	}
}

// resolveExpired sweeps active events whose window closed, recomputes the
// surviving effects, then resolves each removed instance. Resolution runs
// after the recompute so reward-granted multipliers are not clobbered.
func (s *Scheduler) resolveExpired(st *domain.UserState, now time.Time) {
	var live, expired []domain.EventInstance
	for _, inst := range st.ActiveEvents {
		if inst.Expired(now) {
			expired = append(expired, inst)
		} else {
			live = append(live, inst)
		}
	}
	if len(expired) == 0 {
		return
	}
	st.ActiveEvents = live
	RecomputeEffects(st)
	for _, inst := range expired {
		s.resolve(st, inst, now)
	}
	metrics.ActiveEvents.Set(float64(len(st.ActiveEvents)))
}

// resolve settles one expired instance and appends it to the history.
func (s *Scheduler) resolve(st *domain.UserState, inst domain.EventInstance, now time.Time) {
	outcome := domain.OutcomeExpired
	if inst.Type == domain.EventChallenge {
		if s.challengeMet(st, inst) {
			outcome = domain.OutcomeSuccess
			st.ApplyReward(inst.SuccessReward)
		} else {
			outcome = domain.OutcomeFailure
			s.applyFailure(st, inst.FailurePenalty)
		}
		s.notifyOutcome(inst, outcome)
	}

	if inst.Challenge != nil && s.bonusMet(st, inst) {
		st.ApplyReward(inst.BonusReward)
		s.notifier.Notify(domain.Notification{
			Type:  domain.NotifyChallenge,
			Title: fmt.Sprintf("Bonus complete: %s", inst.Name),
			Body:  inst.Challenge.Description,
		})
	}

	inst.Completed = true
	inst.CompletedAt = now
	inst.Outcome = outcome
	st.EventHistory = append(st.EventHistory, inst)
	metrics.EventsExpired.WithLabelValues(outcome).Inc()
}

// challengeMet evaluates a challenge's completion predicate at expiry.
func (s *Scheduler) challengeMet(st *domain.UserState, inst domain.EventInstance) bool {
	switch inst.Check.Kind {
	case domain.CheckAllDailyDone:
		return allDailyDone(st)
	case domain.CheckAllDailyWithin:
		window := time.Duration(inst.Check.WindowHours) * time.Hour
		deadline := inst.StartTime.Add(window)
		for _, t := range st.Tasks[domain.CategoryDaily] {
			if !t.Completed || t.CompletedAt == nil || t.CompletedAt.After(deadline) {
				return false
			}
		}
		return true
	}
	return false
}

// bonusMet evaluates a dynamic event's bonus objective against the
// baseline captured at trigger time.
func (s *Scheduler) bonusMet(st *domain.UserState, inst domain.EventInstance) bool {
	ch := inst.Challenge
	switch ch.Type {
	case BonusTaskStreak:
		return float64(st.Stats.TasksCompleted)-ch.Baseline >= ch.Count
	case BonusAttributeGain:
		return st.Attributes[ch.Attribute]-ch.Baseline >= ch.Count
	case BonusPerfectTiming:
		return allDailyDone(st)
	}
	return false
}

// applyFailure debits the challenge failure penalty.
func (s *Scheduler) applyFailure(st *domain.UserState, p domain.ChallengePenalty) {
	if p.StreakReduction > 0 {
		st.Streak -= p.StreakReduction
		if st.Streak < 0 {
			st.Streak = 0
		}
		metrics.StreakDays.Set(float64(st.Streak))
	}
	if p.PointReduction > 0 {
		for _, a := range domain.AttributeNames() {
			st.AddPoints(a, -p.PointReduction)
		}
	}
}

func (s *Scheduler) notifyOutcome(inst domain.EventInstance, outcome string) {
	title := fmt.Sprintf("Challenge failed: %s", inst.Name)
	if outcome == domain.OutcomeSuccess {
		title = fmt.Sprintf("Challenge complete: %s", inst.Name)
	}
	s.notifier.Notify(domain.Notification{
		Type:  domain.NotifyChallenge,
		Title: title,
		Body:  inst.Description,
	})
}

func allDailyDone(st *domain.UserState) bool {
	for _, t := range st.Tasks[domain.CategoryDaily] {
		if !t.Completed {
			return false
		}
	}
	return true
}

// RecomputeEffects rebuilds every event-derived modifier from the current
// active set, so retracting one event never disturbs overlapping ones.
// Point and streak effects fold into the event multiplier slot; the streak
// slot itself stays owned by achievement rewards.
func RecomputeEffects(st *domain.UserState) {
	event := 1.0
	var attrBoosts map[string]float64
	reduction := 0.0

	for _, inst := range st.ActiveEvents {
		for _, ef := range inst.Effects {
			switch ef.Kind {
			case domain.EffectPointMultiplier, domain.EffectStreakMultiplier:
				event *= ef.Factor
			case domain.EffectAttributeBoost:
				if attrBoosts == nil {
					attrBoosts = make(map[string]float64)
				}
				if cur, ok := attrBoosts[ef.Attribute]; ok {
					attrBoosts[ef.Attribute] = cur * ef.Factor
				} else {
					attrBoosts[ef.Attribute] = ef.Factor
				}
			case domain.EffectAllAttributeBoost:
				if attrBoosts == nil {
					attrBoosts = make(map[string]float64)
				}
				for _, a := range domain.AttributeNames() {
					if cur, ok := attrBoosts[a]; ok {
						attrBoosts[a] = cur * ef.Factor
					} else {
						attrBoosts[a] = ef.Factor
					}
				}
			case domain.EffectRecoveryBoost:
				if ef.Factor > reduction {
					reduction = ef.Factor
				}
			}
		}
	}

	st.Multipliers.Event = event
	st.AttributeMultipliers = attrBoosts
	st.PenaltyReduction = reduction
}
