package sqlite

import (
	"testing"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadState_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st, err := db.LoadState(now)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	for _, a := range domain.AttributeNames() {
		if st.Attributes[a] != 0 {
			t.Fatalf("fresh state attribute %s = %v", a, st.Attributes[a])
		}
	}
	if st.Multipliers.Job != 1.0 || st.Streak != 0 {
		t.Fatalf("fresh state: %+v", st)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st := domain.NewUserState(now)
	st.Attributes[domain.AttrPhysical] = 123.5
	st.Streak = 9
	st.CurrentJob = "Stray Dog"
	st.Tasks[domain.CategoryDaily]["t1"] = &domain.Task{
		ID: "t1", Name: "Run", Category: domain.CategoryDaily,
		Attribute: domain.AttrPhysical, Points: 5, CreatedAt: now,
	}
	if err := db.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got, err := db.LoadState(now)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got.Attributes[domain.AttrPhysical] != 123.5 || got.Streak != 9 || got.CurrentJob != "Stray Dog" {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Tasks[domain.CategoryDaily]["t1"].Name != "Run" {
		t.Fatalf("task lost: %+v", got.Tasks)
	}
}

func TestSave_RotatesBackups(t *testing.T) {
	db := openTestDB(t)
	db.MaxBackups = 3
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st := domain.NewUserState(now)
	for i := 0; i < 8; i++ {
		st.Streak = i
		if err := db.SaveState(st); err != nil {
			t.Fatalf("SaveState %d: %v", i, err)
		}
	}
	n, err := db.BackupCount()
	if err != nil {
		t.Fatalf("BackupCount: %v", err)
	}
	if n != 3 {
		t.Fatalf("backups retained = %d, want 3", n)
	}
}

func TestLoadState_CorruptFallsBackToBackup(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st := domain.NewUserState(now)
	st.Streak = 5
	if err := db.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	// Corrupt the live snapshot; the backup row stays intact.
	if _, err := db.db.Exec(`UPDATE state SET value = 'not json' WHERE key = ?`, stateKey); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	got, err := db.LoadState(now)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got.Streak != 5 {
		t.Fatalf("backup not restored: streak = %d, want 5", got.Streak)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st := domain.NewUserState(now)
	st.Attributes[domain.AttrIntelligence] = 200
	if err := db.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	data, err := db.Export(now)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := openTestDB(t)
	imported, err := other.Import(data, now)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported.Attributes[domain.AttrIntelligence] != 200 {
		t.Fatalf("import lost data: %v", imported.Attributes)
	}

	got, err := other.LoadState(now)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got.Attributes[domain.AttrIntelligence] != 200 {
		t.Fatalf("imported state not persisted: %v", got.Attributes)
	}
}

func TestImport_RejectsGarbage(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	if _, err := db.Import([]byte("definitely not json"), now); err == nil {
		t.Fatal("garbage import accepted")
	}
	if _, err := db.Import([]byte(`{"version": 99}`), now); err == nil {
		t.Fatal("wrong-version import accepted")
	}
}

func TestReset_BacksUpAndClears(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	st := domain.NewUserState(now)
	st.Streak = 42
	if err := db.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	fresh, err := db.Reset(now)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if fresh.Streak != 0 {
		t.Fatalf("reset state streak = %d", fresh.Streak)
	}
	n, err := db.BackupCount()
	if err != nil {
		t.Fatalf("BackupCount: %v", err)
	}
	if n < 2 { // save + pre-reset + reset, within rotation
		t.Fatalf("backups after reset = %d", n)
	}
}

func TestNotificationFeed(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := db.InsertNotification(domain.Notification{
			Type: domain.NotifyAchievement, Title: "Unlocked", Body: "body",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("InsertNotification: %v", err)
		}
	}

	list, err := db.ListNotifications(2)
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(list) != 2 || list[0].ID <= list[1].ID {
		t.Fatalf("list = %v", list)
	}

	n, err := db.CountNotificationsSince(now.Add(time.Minute))
	if err != nil {
		t.Fatalf("CountNotificationsSince: %v", err)
	}
	if n != 2 {
		t.Fatalf("count since = %d, want 2", n)
	}

	if err := db.MarkNotificationShown(list[0].ID); err != nil {
		t.Fatalf("MarkNotificationShown: %v", err)
	}
	list, _ = db.ListNotifications(1)
	if !list[0].Shown {
		t.Fatal("shown flag not persisted")
	}
}

func TestPenaltyHistory(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	_, err := db.InsertPenalty(domain.PenaltyRecord{
		AppliedAt: now, InactiveDays: 5, Tier: 2, Points: 4,
		Attribute: domain.AttrHealth, Message: "Significant Decline",
	})
	if err != nil {
		t.Fatalf("InsertPenalty: %v", err)
	}

	list, err := db.ListPenalties(10)
	if err != nil {
		t.Fatalf("ListPenalties: %v", err)
	}
	if len(list) != 1 || list[0].Tier != 2 || list[0].Attribute != domain.AttrHealth {
		t.Fatalf("list = %v", list)
	}
}
