package session

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/zero2one-app/zero2one/internal/app/events"
	"github.com/zero2one-app/zero2one/internal/app/penalty"
	"github.com/zero2one-app/zero2one/internal/app/tasks"
	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/sqlite"
)

// openTestSession builds a session over a temp database with a settable
// clock shared by every engine.
func openTestSession(t *testing.T, dir string, at *time.Time) *Session {
	t.Helper()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := Open(db, domain.NopNotifier{})
	if err != nil {
		t.Fatalf("Open session: %v", err)
	}
	clock := func() time.Time { return *at }
	s.now = clock
	s.ledger = tasks.NewLedgerAt(clock)
	s.penalties = penalty.NewWithClock(domain.NopNotifier{}, clock, rand.New(rand.NewSource(1)))
	s.scheduler = events.NewSchedulerAt(domain.NopNotifier{}, clock, rand.New(rand.NewSource(1)))
	return s
}

func TestSession_CompleteAwardsAndPersists(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	s := openTestSession(t, dir, &at)

	task, err := s.AddTask("Morning run", "", domain.CategoryDaily, domain.AttrPhysical, 5)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	res, err := s.CompleteTask(domain.CategoryDaily, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.Awarded != 5 {
		t.Fatalf("awarded = %v, want 5 with neutral multipliers", res.Awarded)
	}
	// First completion ever also unlocks first_step (+1 all attributes).
	if len(res.Unlocked) != 1 || res.Unlocked[0].ID != "first_step" {
		t.Fatalf("unlocked = %v", res.Unlocked)
	}

	// Reopen from disk: everything must survive.
	s2 := openTestSession(t, dir, &at)
	st := s2.Status()
	var physical float64
	for _, a := range st.Attributes {
		if a.Name == domain.AttrPhysical {
			physical = a.Value
		}
	}
	if physical != 6 { // 5 awarded + 1 from first_step
		t.Fatalf("Physical after reopen = %v, want 6", physical)
	}
	if st.Streak != 1 {
		t.Fatalf("streak after reopen = %d, want 1", st.Streak)
	}
}

func TestSession_CompleteTwiceIsSoftError(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := openTestSession(t, t.TempDir(), &at)

	task, _ := s.AddTask("Read", "", domain.CategoryDaily, domain.AttrIntelligence, 5)
	if _, err := s.CompleteTask(domain.CategoryDaily, task.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	_, err := s.CompleteTask(domain.CategoryDaily, task.ID)
	if !errors.Is(err, domain.ErrAlreadyCompleted) {
		t.Fatalf("second complete: %v", err)
	}
}

func TestSession_DuplicateTaskRejected(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := openTestSession(t, t.TempDir(), &at)

	if _, err := s.AddTask("Read", "", domain.CategoryDaily, domain.AttrIntelligence, 5); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	_, err := s.AddTask("READ", "", domain.CategoryDaily, domain.AttrIntelligence, 3)
	if !errors.Is(err, domain.ErrDuplicateTask) {
		t.Fatalf("duplicate add: %v", err)
	}
	// Same name in another category is fine.
	if _, err := s.AddTask("Read", "", domain.CategoryWeekly, domain.AttrIntelligence, 5); err != nil {
		t.Fatalf("cross-category add: %v", err)
	}
}

func TestSession_CycleResetsDailyTasks(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := openTestSession(t, t.TempDir(), &at)

	task, _ := s.AddTask("Run", "", domain.CategoryDaily, domain.AttrPhysical, 5)
	if _, err := s.CompleteTask(domain.CategoryDaily, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := s.Cycle(); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	// Next day: the daily task reopens.
	at = at.AddDate(0, 0, 1)
	res, err := s.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if !res.DailyReset {
		t.Fatal("daily reset not reported")
	}
	s.View(func(st *domain.UserState) {
		if st.Tasks[domain.CategoryDaily][task.ID].Completed {
			t.Fatal("daily task still completed after reset")
		}
	})
}

func TestSession_CycleAppliesPenalty(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := openTestSession(t, t.TempDir(), &at)

	if _, err := s.AddTask("Run", "", domain.CategoryDaily, domain.AttrPhysical, 5); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	s.View(func(st *domain.UserState) {
		for _, a := range domain.AttributeNames() {
			st.Attributes[a] = 50
		}
	})
	if _, err := s.Cycle(); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	// Three days of silence: past the grace path, straight to a penalty.
	at = at.AddDate(0, 0, 3)
	res, err := s.Cycle()
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if res.Penalty == nil {
		t.Fatal("no penalty after 3 inactive days")
	}
	if res.Penalty.Tier != 1 {
		t.Fatalf("tier = %d, want 1", res.Penalty.Tier)
	}

	recs, err := s.db.ListPenalties(5)
	if err != nil || len(recs) != 1 {
		t.Fatalf("penalty not archived: %v %v", recs, err)
	}
}

func TestSession_AcceptJobPersists(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	s := openTestSession(t, dir, &at)

	if _, err := s.AcceptJob("Master of None"); err != nil {
		t.Fatalf("AcceptJob: %v", err)
	}
	if _, err := s.AcceptJob("Enigma"); !errors.Is(err, domain.ErrInvalidJob) {
		t.Fatalf("Enigma at zero attributes: %v", err)
	}

	s2 := openTestSession(t, dir, &at)
	if got := s2.Status().CurrentJob; got != "Master of None" {
		t.Fatalf("CurrentJob after reopen = %q", got)
	}
}

func TestSession_ExportImportRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := openTestSession(t, t.TempDir(), &at)

	task, _ := s.AddTask("Run", "", domain.CategoryDaily, domain.AttrPhysical, 5)
	if _, err := s.CompleteTask(domain.CategoryDaily, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := openTestSession(t, t.TempDir(), &at)
	if err := other.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if other.Status().Stats.TasksCompleted != 1 {
		t.Fatalf("imported stats: %+v", other.Status().Stats)
	}

	if err := other.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if other.Status().Stats.TasksCompleted != 0 {
		t.Fatal("reset did not clear state")
	}
}
