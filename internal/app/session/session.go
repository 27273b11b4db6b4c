// Package session wires the engines together around one user state: it
// owns the load/mutate/persist cycle every CLI command and API request
// goes through.
package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zero2one-app/zero2one/internal/app/achievements"
	"github.com/zero2one-app/zero2one/internal/app/events"
	"github.com/zero2one-app/zero2one/internal/app/jobs"
	"github.com/zero2one-app/zero2one/internal/app/penalty"
	"github.com/zero2one-app/zero2one/internal/app/progress"
	"github.com/zero2one-app/zero2one/internal/app/tasks"
	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
	"github.com/zero2one-app/zero2one/internal/infra/sqlite"
)

// Session owns the single user state and coordinates the engines over it.
// All methods are safe for concurrent use; the state mutates under one
// lock and persists before the lock releases.
type Session struct {
	mu sync.Mutex

	db *sqlite.DB
	st *domain.UserState

	ledger    *tasks.Ledger
	penalties *penalty.Engine
	scheduler *events.Scheduler
	unlocks   *achievements.Engine
	chains    *achievements.ChainEngine
	careers   *jobs.Gate
	ranks     progress.RankTable

	now func() time.Time
}

// Open loads the persisted state and builds a session around it.
func Open(db *sqlite.DB, notifier domain.Notifier) (*Session, error) {
	now := time.Now()
	st, err := db.LoadState(now)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	st.Normalize()
	s := &Session{
		db:        db,
		st:        st,
		ledger:    tasks.NewLedger(),
		penalties: penalty.New(notifier),
		scheduler: events.NewScheduler(notifier),
		unlocks:   achievements.NewEngine(notifier),
		chains:    achievements.NewChainEngine(notifier),
		careers:   jobs.NewGate(notifier),
		ranks:     progress.DefaultRankTable(),
		now:       time.Now,
	}
	s.publishGauges()
	return s, nil
}

// Tune adjusts engine knobs after Open. Zero values leave defaults.
func (s *Session) Tune(rankStep float64, grace, eventCheckInterval time.Duration, dynamicChance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rankStep > 0 {
		s.ranks = progress.NewRankTable(rankStep)
	}
	if grace > 0 {
		s.penalties.Grace = grace
	}
	if eventCheckInterval > 0 {
		s.scheduler.CheckInterval = eventCheckInterval
	}
	if dynamicChance > 0 {
		s.scheduler.DynamicChance = dynamicChance
	}
}

// ─── Cycle ──────────────────────────────────────────────────────────────────

// CycleResult reports what one engine cycle changed.
type CycleResult struct {
	Penalty         *domain.PenaltyRecord       `json:"penalty,omitempty"`
	TriggeredEvents []domain.EventInstance      `json:"triggered_events,omitempty"`
	Unlocked        []domain.AchievementDef     `json:"unlocked,omitempty"`
	ChainStages     []achievements.StageAdvance `json:"chain_stages,omitempty"`
	DailyReset      bool                        `json:"daily_reset,omitempty"`
	WeeklyReset     bool                        `json:"weekly_reset,omitempty"`
}

// Cycle runs one full engine pass: periodic task resets, the inactivity
// check, event triggering and expiry, then achievement and chain
// re-evaluation. The state persists at the end regardless of what fired.
func (s *Session) Cycle() (CycleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var res CycleResult

	res.DailyReset, res.WeeklyReset = s.periodicResets(now)

	if rec := s.penalties.Evaluate(s.st); rec != nil {
		res.Penalty = rec
		if _, err := s.db.InsertPenalty(*rec); err != nil {
			log.Printf("[session] archive penalty: %v", err)
		}
	}

	res.TriggeredEvents = s.scheduler.Check(s.st)
	res.Unlocked = s.unlocks.Evaluate(s.st)
	res.ChainStages = s.chains.Evaluate(s.st)

	s.publishGauges()
	return res, s.persist()
}

// periodicResets reopens daily tasks on a new calendar day and weekly
// tasks on a new ISO week.
func (s *Session) periodicResets(now time.Time) (daily, weekly bool) {
	if !sameDay(s.st.LastDailyReset, now) {
		daily = !s.st.LastDailyReset.IsZero()
		s.ledger.ResetCategory(s.st, domain.CategoryDaily)
		s.st.LastDailyReset = now
	}
	wy, ww := now.ISOWeek()
	ly, lw := s.st.LastWeeklyReset.ISOWeek()
	if wy != ly || ww != lw {
		weekly = !s.st.LastWeeklyReset.IsZero()
		s.ledger.ResetCategory(s.st, domain.CategoryWeekly)
		s.st.LastWeeklyReset = now
	}
	return daily, weekly
}

// ─── Task operations ────────────────────────────────────────────────────────

// AddTask creates a task and persists.
func (s *Session) AddTask(name, description string, category domain.Category, attribute string, points float64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.ledger.Create(s.st, name, description, category, attribute, points)
	if err != nil {
		return nil, err
	}
	return task, s.persist()
}

// CompleteResult reports one completion and everything it cascaded into.
type CompleteResult struct {
	Task        *domain.Task                `json:"task"`
	Awarded     float64                     `json:"awarded"`
	Unlocked    []domain.AchievementDef     `json:"unlocked,omitempty"`
	ChainStages []achievements.StageAdvance `json:"chain_stages,omitempty"`
}

// CompleteTask completes a task, re-evaluates unlocks, and persists.
// A domain.ErrAlreadyCompleted comes back alongside the task; the state
// is untouched in that case.
func (s *Session) CompleteTask(category domain.Category, id string) (CompleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, awarded, err := s.ledger.Complete(s.st, category, id)
	if err != nil {
		return CompleteResult{Task: task}, err
	}
	res := CompleteResult{
		Task:        task,
		Awarded:     awarded,
		Unlocked:    s.unlocks.Evaluate(s.st),
		ChainStages: s.chains.Evaluate(s.st),
	}
	s.publishGauges()
	return res, s.persist()
}

// RemoveTask deletes a task and persists. Unknown ids are a no-op.
func (s *Session) RemoveTask(category domain.Category, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Remove(s.st, category, id)
	return s.persist()
}

// ─── Jobs ───────────────────────────────────────────────────────────────────

// AcceptJob switches careers and persists.
func (s *Session) AcceptJob(name string) (domain.JobDef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, err := s.careers.Accept(s.st, name)
	if err != nil {
		return domain.JobDef{}, err
	}
	return def, s.persist()
}

// AvailableJobs lists the jobs the current attributes unlock.
func (s *Session) AvailableJobs() []domain.JobDef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.careers.Available(s.st)
}

// JobCatalog lists every job in tier order.
func (s *Session) JobCatalog() []domain.JobDef {
	return s.careers.All()
}

// ─── Views ──────────────────────────────────────────────────────────────────

// AttributeStatus is one attribute's progression view.
type AttributeStatus struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Rank     string  `json:"rank"`
	NextRank string  `json:"next_rank"`
	Progress float64 `json:"progress"`
}

// Status is the full progression summary.
type Status struct {
	Attributes   []AttributeStatus      `json:"attributes"`
	OverallRank  string                 `json:"overall_rank"`
	Streak       int                    `json:"streak"`
	Multipliers  domain.Multipliers     `json:"multipliers"`
	CurrentJob   string                 `json:"current_job,omitempty"`
	ActiveEvents []domain.EventInstance `json:"active_events,omitempty"`
	Stats        domain.LifetimeStats   `json:"stats"`
	TasksTotal   int                    `json:"tasks_total"`
	TasksDone    int                    `json:"tasks_done"`
}

// Status assembles the progression summary the CLI and API render.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	var attrs []AttributeStatus
	var sum float64
	for _, name := range domain.AttributeNames() {
		v := s.st.Attributes[name]
		sum += v
		cur, next, prog := s.ranks.Calculate(v)
		attrs = append(attrs, AttributeStatus{
			Name: name, Value: v, Rank: cur, NextRank: next, Progress: prog,
		})
	}
	overall, _, _ := s.ranks.Calculate(sum / float64(len(domain.AttributeNames())))
	total, done := s.st.TaskTotals()

	return Status{
		Attributes:   attrs,
		OverallRank:  overall,
		Streak:       s.st.Streak,
		Multipliers:  s.st.Multipliers,
		CurrentJob:   s.st.CurrentJob,
		ActiveEvents: append([]domain.EventInstance(nil), s.st.ActiveEvents...),
		Stats:        s.st.Stats,
		TasksTotal:   total,
		TasksDone:    done,
	}
}

// View runs fn with the state under the session lock. The callback must
// not retain the pointer.
func (s *Session) View(fn func(st *domain.UserState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// Achievements returns the catalog plus the unlocked id set.
func (s *Session) Achievements() ([]domain.AchievementDef, map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := make(map[string]bool, len(s.st.CompletedAchievements))
	for _, id := range s.st.CompletedAchievements {
		done[id] = true
	}
	return achievements.Catalog(), done
}

// Penalties returns the newest archived penalty records.
func (s *Session) Penalties(limit int) ([]domain.PenaltyRecord, error) {
	return s.db.ListPenalties(limit)
}

// Chains returns the chain catalog plus per-chain progress.
func (s *Session) Chains() ([]domain.ChainDef, map[string]domain.ChainProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prog := make(map[string]domain.ChainProgress, len(s.st.Chains))
	for id, p := range s.st.Chains {
		prog[id] = *p
	}
	return achievements.Chains(), prog
}

// ─── Data management ────────────────────────────────────────────────────────

// Export serializes the state into a versioned envelope.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(); err != nil {
		return nil, err
	}
	return s.db.Export(s.now())
}

// Import replaces the state with an exported envelope.
func (s *Session) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.db.Import(data, s.now())
	if err != nil {
		return err
	}
	s.st = st
	s.publishGauges()
	return nil
}

// Reset wipes the state after backing it up.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.db.Reset(s.now())
	if err != nil {
		return err
	}
	s.st = st
	s.publishGauges()
	return nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

func (s *Session) persist() error {
	if err := s.db.SaveState(s.st); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// publishGauges refreshes the gauges derived from absolute state.
func (s *Session) publishGauges() {
	for _, a := range domain.AttributeNames() {
		metrics.AttributeValue.WithLabelValues(a).Set(s.st.Attributes[a])
	}
	metrics.StreakDays.Set(float64(s.st.Streak))
	metrics.ActiveEvents.Set(float64(len(s.st.ActiveEvents)))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
