package penalty

import (
	"math/rand"
	"testing"
	"time"

	"github.com/zero2one-app/zero2one/internal/app/tasks"
	"github.com/zero2one-app/zero2one/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func stateWithPendingTask(now time.Time) *domain.UserState {
	st := domain.NewUserState(now)
	st.Tasks[domain.CategoryDaily]["t1"] = &domain.Task{
		ID: "t1", Name: "Morning run", Category: domain.CategoryDaily,
		Attribute: domain.AttrPhysical, Points: 5, CreatedAt: now,
	}
	return st
}

func TestDetermineSeverity(t *testing.T) {
	cases := []struct {
		days, level int
	}{
		{1, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {365, 3},
	}
	for _, c := range cases {
		if got := DetermineSeverity(c.days).Level; got != c.level {
			t.Errorf("DetermineSeverity(%d).Level = %d, want %d", c.days, got, c.level)
		}
	}
}

func TestEvaluate_SameDayNoPenalty(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.Add(-2 * time.Hour)

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("same-day evaluation applied a penalty: %+v", rec)
	}
}

func TestEvaluate_OneDayGrantsGrace(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -1)

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("first missed day applied a penalty instead of grace: %+v", rec)
	}
	want := now.Add(GraceWindow)
	if !st.MakeupDeadline.Equal(want) {
		t.Fatalf("MakeupDeadline = %v, want %v", st.MakeupDeadline, want)
	}
	if !st.LastActive.Equal(now) {
		t.Fatalf("LastActive not stamped: %v", st.LastActive)
	}
}

func TestEvaluate_OneDayCleanNoGrace(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now) // no tasks at all
	st.LastActive = now.AddDate(0, 0, -1)

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("clean day off penalized: %+v", rec)
	}
	if !st.MakeupDeadline.IsZero() {
		t.Fatalf("grace granted with nothing missed: %v", st.MakeupDeadline)
	}
}

func TestEvaluate_TwoDaysAppliesTierOne(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -2)
	for _, a := range domain.AttributeNames() {
		st.Attributes[a] = 50
	}

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(7)))
	rec := eng.Evaluate(st)
	if rec == nil {
		t.Fatal("two missed days with no grace must penalize immediately")
	}
	if rec.Tier != 1 {
		t.Fatalf("Tier = %d, want 1", rec.Tier)
	}
	if rec.Points < 1 || rec.Points > 2 {
		t.Fatalf("Points = %v, want within [1,2]", rec.Points)
	}
	if rec.InactiveDays != 2 {
		t.Fatalf("InactiveDays = %d, want 2", rec.InactiveDays)
	}
}

func TestEvaluate_GraceOpenDefersPenalty(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -2)
	st.MakeupDeadline = now.Add(3 * time.Hour)

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("penalty applied while grace window open: %+v", rec)
	}
}

func TestEvaluate_GraceOpenAtExactDeadline(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -2)
	st.MakeupDeadline = now

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("penalty applied at the deadline instant: %+v", rec)
	}
}

func TestEvaluate_FreshGraceAfterSuccessfulMakeup(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	at := start
	clock := func() time.Time { return at }
	st := stateWithPendingTask(start)
	st.LastActive = start.AddDate(0, 0, -1)

	eng := NewWithClock(domain.NopNotifier{}, clock, rand.New(rand.NewSource(1)))
	ledger := tasks.NewLedgerAt(clock)

	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("first missed day penalized instead of granting grace: %+v", rec)
	}
	if st.MakeupDeadline.IsZero() {
		t.Fatal("no grace window granted")
	}

	// Making up inside the window settles the deadline.
	at = at.Add(2 * time.Hour)
	if _, _, err := ledger.Complete(st, domain.CategoryDaily, "t1"); err != nil {
		t.Fatalf("makeup completion: %v", err)
	}
	if !st.MakeupDeadline.IsZero() {
		t.Fatalf("makeup completion left the window outstanding: %v", st.MakeupDeadline)
	}

	// Weeks later a single missed day starts a fresh episode and must get
	// its own grace window, not a penalty off the old deadline.
	at = start.AddDate(0, 0, 22)
	st.Tasks[domain.CategoryDaily]["t1"].Completed = false
	st.Tasks[domain.CategoryDaily]["t1"].CompletedAt = nil
	st.LastActive = at.AddDate(0, 0, -1)

	if rec := eng.Evaluate(st); rec != nil {
		t.Fatalf("new one-day episode penalized: %+v", rec)
	}
	want := at.Add(GraceWindow)
	if !st.MakeupDeadline.Equal(want) {
		t.Fatalf("MakeupDeadline = %v, want %v", st.MakeupDeadline, want)
	}
}

func TestEvaluate_GraceLapsedApplies(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -1)
	st.MakeupDeadline = now.Add(-time.Minute)

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	rec := eng.Evaluate(st)
	if rec == nil {
		t.Fatal("lapsed grace window must penalize")
	}
	if !st.MakeupDeadline.IsZero() {
		t.Fatal("MakeupDeadline not cleared after penalty")
	}
}

func TestEvaluate_ClampAtZero(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	for seed := int64(0); seed < 50; seed++ {
		st := stateWithPendingTask(now)
		st.LastActive = now.AddDate(0, 0, -10) // tier 3
		st.Attributes[domain.AttrHealth] = 0.5

		eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(seed)))
		eng.Evaluate(st)
		for _, a := range domain.AttributeNames() {
			if st.Attributes[a] < 0 {
				t.Fatalf("seed %d: attribute %s went negative: %v", seed, a, st.Attributes[a])
			}
		}
	}
}

func TestEvaluate_TierTwoResetsStreak(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := stateWithPendingTask(now)
	st.LastActive = now.AddDate(0, 0, -5)
	st.Streak = 14

	eng := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(1)))
	rec := eng.Evaluate(st)
	if rec == nil || rec.Tier != 2 {
		t.Fatalf("want tier-2 penalty, got %+v", rec)
	}
	if st.Streak != 0 {
		t.Fatalf("streak = %d after tier-2 penalty, want 0", st.Streak)
	}
}

func TestEvaluate_PenaltyReductionScales(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	base := stateWithPendingTask(now)
	base.LastActive = now.AddDate(0, 0, -10)
	reduced := stateWithPendingTask(now)
	reduced.LastActive = now.AddDate(0, 0, -10)
	reduced.PenaltyReduction = 0.5

	a := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(3)))
	b := NewWithClock(domain.NopNotifier{}, fixedClock(now), rand.New(rand.NewSource(3)))
	full := a.Evaluate(base)
	half := b.Evaluate(reduced)
	if full == nil || half == nil {
		t.Fatal("both evaluations must penalize")
	}
	if half.Points >= full.Points {
		t.Fatalf("reduction did not soften penalty: %v >= %v", half.Points, full.Points)
	}
}
