// Package tasks implements the task ledger: task lifecycle across the
// daily/weekly/special categories and reward posting through the
// multiplier pipeline.
package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zero2one-app/zero2one/internal/app/progress"
	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/metrics"
)

// Ledger owns task records inside a UserState. It is handed the state
// explicitly on every call; the session persists after mutations.
type Ledger struct {
	now   func() time.Time
	newID func() string
}

// NewLedger creates a ledger using wall-clock time and UUID task ids.
func NewLedger() *Ledger {
	return &Ledger{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// NewLedgerAt creates a ledger with an injected clock for tests.
func NewLedgerAt(now func() time.Time) *Ledger {
	l := NewLedger()
	l.now = now
	return l
}

// Create inserts a new incomplete task. Fails with ErrDuplicateTask when a
// task with the same name (case-insensitive) already exists in the category.
func (l *Ledger) Create(st *domain.UserState, name, description string, category domain.Category, attribute string, points float64) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyTaskName
	}
	if !domain.IsCategory(category) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
	}
	if !domain.IsAttribute(attribute) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAttribute, attribute)
	}
	if points <= 0 {
		return nil, domain.ErrInvalidPoints
	}

	lower := strings.ToLower(name)
	for _, t := range st.Tasks[category] {
		if strings.ToLower(t.Name) == lower {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateTask, name)
		}
	}

	task := &domain.Task{
		ID:          l.newID(),
		Name:        name,
		Description: description,
		Category:    category,
		Attribute:   attribute,
		Points:      points,
		CreatedAt:   l.now(),
	}
	st.Tasks[category][task.ID] = task

	metrics.TasksCreated.WithLabelValues(string(category)).Inc()
	return task, nil
}

// Complete marks a task completed exactly once and posts its reward.
// Returns the awarded points. ErrAlreadyCompleted is soft: the caller may
// surface it, but state is untouched and the session continues.
func (l *Ledger) Complete(st *domain.UserState, category domain.Category, id string) (*domain.Task, float64, error) {
	task, ok := st.Tasks[category][id]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s/%s", domain.ErrTaskNotFound, category, id)
	}
	if task.Completed {
		return task, 0, domain.ErrAlreadyCompleted
	}

	now := l.now()
	task.Completed = true
	task.CompletedAt = &now

	awarded := progress.EffectivePoints(st, task.Points, task.Attribute)
	st.AddPoints(task.Attribute, awarded)

	st.Stats.TasksCompleted++
	st.Stats.TotalPointsEarned += awarded
	l.recordActivity(st, now)

	metrics.TasksCompleted.WithLabelValues(string(category)).Inc()
	metrics.PointsAwarded.WithLabelValues(task.Attribute).Add(awarded)
	metrics.AttributeValue.WithLabelValues(task.Attribute).Set(st.Attributes[task.Attribute])
	return task, awarded, nil
}

// Remove deletes a task unconditionally. Deleting an absent task is a no-op.
func (l *Ledger) Remove(st *domain.UserState, category domain.Category, id string) {
	delete(st.Tasks[category], id)
}

// ResetCategory marks every task in a category incomplete again. Used by
// the session's periodic reset for daily and weekly tasks.
func (l *Ledger) ResetCategory(st *domain.UserState, category domain.Category) {
	for _, t := range st.Tasks[category] {
		t.Completed = false
		t.CompletedAt = nil
	}
}

// recordActivity stamps activity and extends the streak on the first
// completion of a new calendar day.
func (l *Ledger) recordActivity(st *domain.UserState, now time.Time) {
	if !sameDay(st.LastCompletion, now) {
		st.Streak++
		if st.Streak > st.Stats.MaxStreak {
			st.Stats.MaxStreak = st.Streak
		}
	}
	st.LastCompletion = now
	st.LastActive = now
	// A completion settles any outstanding makeup window; the next missed
	// day starts a fresh episode with its own grace.
	st.MakeupDeadline = time.Time{}
	metrics.StreakDays.Set(float64(st.Streak))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
