package jobs

import (
	"fmt"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
)

// Gate answers job availability and handles acceptance against the fixed
// catalog.
type Gate struct {
	defs     []domain.JobDef
	now      func() time.Time
	notifier domain.Notifier
}

// NewGate creates a gate over the fixed catalog.
func NewGate(notifier domain.Notifier) *Gate {
	return &Gate{defs: Catalog(), now: time.Now, notifier: notifier}
}

// NewGateAt creates a gate with an injected clock for tests.
func NewGateAt(notifier domain.Notifier, now func() time.Time) *Gate {
	g := NewGate(notifier)
	g.now = now
	return g
}

// All returns the full catalog in tier order.
func (g *Gate) All() []domain.JobDef {
	return g.defs
}

// Lookup finds a job by name.
func (g *Gate) Lookup(name string) (domain.JobDef, bool) {
	for _, def := range g.defs {
		if def.Name == name {
			return def, true
		}
	}
	return domain.JobDef{}, false
}

// Available returns every job whose attribute requirements the state meets.
// A job with no requirements is always available.
func (g *Gate) Available(st *domain.UserState) []domain.JobDef {
	var out []domain.JobDef
	for _, def := range g.defs {
		if meets(st, def) {
			out = append(out, def)
		}
	}
	return out
}

// Accept switches the current job and installs its perk multiplier.
// Fails when the job is unknown, its requirements are not met, or it is
// already the current job.
func (g *Gate) Accept(st *domain.UserState, name string) (domain.JobDef, error) {
	def, ok := g.Lookup(name)
	if !ok {
		return domain.JobDef{}, fmt.Errorf("%w: unknown job %q", domain.ErrInvalidJob, name)
	}
	if !meets(st, def) {
		return domain.JobDef{}, fmt.Errorf("%w: requirements not met for %q", domain.ErrInvalidJob, name)
	}
	if st.CurrentJob == def.Name {
		return domain.JobDef{}, fmt.Errorf("%w: already working as %q", domain.ErrInvalidJob, name)
	}

	st.CurrentJob = def.Name
	st.JobHistory = append(st.JobHistory, domain.JobRecord{
		Job:        def.Name,
		AcceptedAt: g.now(),
	})
	st.Multipliers.Job = def.PerkMultiplier

	metrics.JobsAccepted.WithLabelValues(string(def.Tier)).Inc()
	g.notifier.Notify(domain.Notification{
		Type:  domain.NotifyJob,
		Title: fmt.Sprintf("%s New position: %s", def.Icon, def.Name),
		Body:  def.Perk,
	})
	return def, nil
}

func meets(st *domain.UserState, def domain.JobDef) bool {
	for attr, required := range def.Requirements {
		if st.Attributes[attr] < required {
			return false
		}
	}
	return true
}
