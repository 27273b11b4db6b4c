package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
)

func newGate(now time.Time) *Gate {
	return NewGateAt(domain.NopNotifier{}, func() time.Time { return now })
}

func available(g *Gate, st *domain.UserState) map[string]bool {
	out := make(map[string]bool)
	for _, def := range g.Available(st) {
		out[def.Name] = true
	}
	return out
}

func TestAvailable_NoRequirementsAlwaysOpen(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now)

	avail := available(newGate(now), st)
	if !avail["Master of None"] {
		t.Fatal("Master of None must be available to a fresh state")
	}
	if len(avail) != 1 {
		t.Fatalf("fresh state sees %d jobs, want 1: %v", len(avail), avail)
	}
}

func TestAvailable_ThresholdIsInclusive(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now)
	g := newGate(now)

	st.Attributes[domain.AttrResilience] = 49
	if available(g, st)["Stray Dog"] {
		t.Fatal("Stray Dog available at Resilience 49")
	}

	st.Attributes[domain.AttrResilience] = 50
	if !available(g, st)["Stray Dog"] {
		t.Fatal("Stray Dog unavailable at Resilience 50")
	}
}

func TestAccept_InstallsPerkMultiplier(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now)
	st.Attributes[domain.AttrResilience] = 60

	def, err := newGate(now).Accept(st, "Stray Dog")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if def.PerkMultiplier != 1.1 || st.Multipliers.Job != 1.1 {
		t.Fatalf("perk multiplier not installed: def=%v state=%v", def.PerkMultiplier, st.Multipliers.Job)
	}
	if st.CurrentJob != "Stray Dog" {
		t.Fatalf("CurrentJob = %q", st.CurrentJob)
	}
	if len(st.JobHistory) != 1 || st.JobHistory[0].Job != "Stray Dog" || !st.JobHistory[0].AcceptedAt.Equal(now) {
		t.Fatalf("JobHistory = %v", st.JobHistory)
	}
}

func TestAccept_PerksReplaceNotStack(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now)
	st.Attributes[domain.AttrResilience] = 60
	st.Attributes[domain.AttrIntelligence] = 90

	g := newGate(now)
	if _, err := g.Accept(st, "Stray Dog"); err != nil {
		t.Fatalf("Accept Stray Dog: %v", err)
	}
	if _, err := g.Accept(st, "Apprentice"); err != nil {
		t.Fatalf("Accept Apprentice: %v", err)
	}
	if st.Multipliers.Job != 1.15 {
		t.Fatalf("job multiplier = %v, want 1.15 (replaced, not stacked)", st.Multipliers.Job)
	}
	if len(st.JobHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(st.JobHistory))
	}
}

func TestAccept_Rejections(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	st := domain.NewUserState(now)

	g := newGate(now)
	if _, err := g.Accept(st, "Nonexistent"); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("unknown job: %v", err)
	}
	if _, err := g.Accept(st, "Enigma"); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("unmet requirements: %v", err)
	}

	if _, err := g.Accept(st, "Master of None"); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, err := g.Accept(st, "Master of None"); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("re-accepting current job: %v", err)
	}
}

func TestCatalog_Complete(t *testing.T) {
	defs := Catalog()
	if len(defs) != 19 {
		t.Fatalf("catalog has %d jobs, want 19", len(defs))
	}
	seen := make(map[string]bool)
	for _, def := range defs {
		if seen[def.Name] {
			t.Fatalf("duplicate job %q", def.Name)
		}
		seen[def.Name] = true
		if def.PerkMultiplier < 1.0 {
			t.Fatalf("%s has perk multiplier %v", def.Name, def.PerkMultiplier)
		}
		for attr := range def.Requirements {
			if !domain.IsAttribute(attr) {
				t.Fatalf("%s requires unknown attribute %q", def.Name, attr)
			}
		}
	}
}
