// Package penalty implements the inactivity penalty engine: a severity
// ladder over missed days, a one-time 12-hour makeup grace window, and
// randomized attribute debits that clamp at zero.
package penalty

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
)

// Severity is one tier of the inactivity ladder.
type Severity struct {
	Level   int
	MinDays int
	MaxDays int // 0 = unbounded
	MinPts  int
	MaxPts  int
	Message string
}

// severityTiers maps inactive-day counts onto penalty magnitude ranges.
var severityTiers = []Severity{
	{Level: 1, MinDays: 1, MaxDays: 3, MinPts: 1, MaxPts: 2, Message: "Minor Setback"},
	{Level: 2, MinDays: 4, MaxDays: 7, MinPts: 3, MaxPts: 5, Message: "Significant Decline"},
	{Level: 3, MinDays: 8, MaxDays: 0, MinPts: 6, MaxPts: 8, Message: "Critical Failure"},
}

// DetermineSeverity returns the tier for a given inactive-day count.
// Extended absence saturates at the top tier.
func DetermineSeverity(inactiveDays int) Severity {
	for _, s := range severityTiers {
		if inactiveDays >= s.MinDays && (s.MaxDays == 0 || inactiveDays <= s.MaxDays) {
			return s
		}
	}
	return severityTiers[len(severityTiers)-1]
}

// GraceWindow is how long the one-time makeup opportunity lasts.
const GraceWindow = 12 * time.Hour

// singleAttributeChance is the probability the whole penalty lands on one
// randomly chosen attribute instead of being split across all of them.
const singleAttributeChance = 0.7

// Engine evaluates inactivity once per activity check. Running it twice in
// the same instant would double-penalize; the engine stamps LastActive at
// the end of every evaluation so subsequent reads see d = 0.
type Engine struct {
	now      func() time.Time
	rng      *rand.Rand
	notifier domain.Notifier

	// Grace overrides the default makeup window.
	Grace time.Duration
}

// New creates a penalty engine with wall-clock time and a seeded source.
func New(notifier domain.Notifier) *Engine {
	return &Engine{
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		notifier: notifier,
		Grace:    GraceWindow,
	}
}

// NewWithClock creates an engine with injected time and randomness for tests.
func NewWithClock(notifier domain.Notifier, now func() time.Time, rng *rand.Rand) *Engine {
	return &Engine{now: now, rng: rng, notifier: notifier, Grace: GraceWindow}
}

// Evaluate runs one penalty check against the state. Returns the applied
// penalty record, or nil when no penalty landed (active day, nothing to
// miss, or grace window granted/still open).
func (e *Engine) Evaluate(st *domain.UserState) *domain.PenaltyRecord {
	now := e.now()
	defer func() { st.LastActive = now }()

	d := daysBetween(st.LastActive, now)
	if d <= 0 {
		return nil
	}

	if d == 1 && !st.HasIncompleteTasks() {
		// Nothing was missed — a clean day off carries no penalty.
		return nil
	}

	if d == 1 && st.MakeupDeadline.IsZero() {
		// First missed day: grant the makeup opportunity instead of
		// penalizing. The penalty lands only if the window lapses.
		st.MakeupDeadline = now.Add(e.Grace)
		e.notifier.Notify(domain.Notification{
			Type:  domain.NotifyPenalty,
			Title: "Makeup Opportunity",
			Body:  fmt.Sprintf("Complete your tasks within %d hours to avoid penalties.", int(e.Grace.Hours())),
		})
		return nil
	}

	if !st.MakeupDeadline.IsZero() && !now.After(st.MakeupDeadline) {
		// Grace still open, deadline instant included.
		return nil
	}

	rec := e.apply(st, d, now)
	st.MakeupDeadline = time.Time{}
	return rec
}

// apply draws a magnitude from the tier's range and debits attributes,
// clamping each at zero.
func (e *Engine) apply(st *domain.UserState, inactiveDays int, now time.Time) *domain.PenaltyRecord {
	sev := DetermineSeverity(inactiveDays)
	points := float64(sev.MinPts + e.rng.Intn(sev.MaxPts-sev.MinPts+1))

	// Recovery-boost events soften the blow.
	if st.PenaltyReduction > 0 && st.PenaltyReduction < 1 {
		points *= 1 - st.PenaltyReduction
	}

	rec := &domain.PenaltyRecord{
		AppliedAt:    now,
		InactiveDays: inactiveDays,
		Tier:         sev.Level,
		Points:       points,
		Message:      sev.Message,
	}

	if e.rng.Float64() < singleAttributeChance {
		attrs := domain.AttributeNames()
		attr := attrs[e.rng.Intn(len(attrs))]
		st.AddPoints(attr, -points)
		rec.Attribute = attr
	} else {
		per := points / float64(len(domain.AttributeNames()))
		for _, attr := range domain.AttributeNames() {
			st.AddPoints(attr, -per)
		}
		rec.Distributed = true
	}

	// A multi-day absence cannot be a consecutive-day streak.
	if sev.Level >= 2 {
		st.Streak = 0
		metrics.StreakDays.Set(0)
	}

	metrics.PenaltiesApplied.WithLabelValues(strconv.Itoa(sev.Level)).Inc()
	metrics.PenaltyPoints.Add(points)

	target := "all attributes"
	if rec.Attribute != "" {
		target = rec.Attribute
	}
	e.notifier.Notify(domain.Notification{
		Type:  domain.NotifyPenalty,
		Title: sev.Message,
		Body:  fmt.Sprintf("%d inactive days: -%.1f points to %s.", inactiveDays, points, target),
	})
	return rec
}

// daysBetween counts whole calendar days between two instants, ignoring
// time of day.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
