package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
)

// stateKey is the KV slot holding the current snapshot.
const stateKey = "user_state"

// ExportVersion tags export envelopes so future formats stay readable.
const ExportVersion = 1

// ExportEnvelope wraps a snapshot for transfer between installations.
type ExportEnvelope struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	State      *domain.UserState `json:"state"`
}

// LoadState returns the persisted user state. A missing snapshot yields a
// fresh default state. A corrupt snapshot falls back to the newest backup
// that still parses, and only then to the default.
func (d *DB) LoadState(now time.Time) (*domain.UserState, error) {
	var raw string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, stateKey).Scan(&raw)
	if err == sql.ErrNoRows {
		return domain.NewUserState(now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	if st, err := decodeState(raw); err == nil {
		return st, nil
	}
	log.Printf("[sqlite] state snapshot corrupt, trying backups")

	rows, err := d.db.Query(`SELECT snapshot FROM backups ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("load backups: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var snap string
		if err := rows.Scan(&snap); err != nil {
			return nil, err
		}
		if st, err := decodeState(snap); err == nil {
			log.Printf("[sqlite] restored state from backup")
			return st, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Printf("[sqlite] no usable backup, starting fresh")
	return domain.NewUserState(now), nil
}

// SaveState persists the snapshot and appends a rotating backup.
func (d *DB) SaveState(st *domain.UserState) error {
	return d.saveState(st, "save")
}

// saveState writes the snapshot under the KV key and records a backup
// tagged with the given reason, pruning past MaxBackups.
func (d *DB) saveState(st *domain.UserState, reason string) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		stateKey, string(raw),
	); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO backups (created_at, reason, snapshot) VALUES (?, ?, ?)`,
		time.Now().Unix(), reason, string(raw),
	); err != nil {
		return fmt.Errorf("save backup: %w", err)
	}

	max := d.MaxBackups
	if max <= 0 {
		max = DefaultMaxBackups
	}
	if _, err := tx.Exec(
		`DELETE FROM backups WHERE id NOT IN (
			SELECT id FROM backups ORDER BY id DESC LIMIT ?
		)`, max,
	); err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}

	return tx.Commit()
}

// Export serializes the current state into a versioned envelope.
func (d *DB) Export(now time.Time) ([]byte, error) {
	st, err := d.LoadState(now)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ExportEnvelope{
		Version:    ExportVersion,
		ExportedAt: now,
		State:      st,
	}, "", "  ")
}

// Import replaces the current state with an exported envelope. The
// outgoing state is backed up first so a bad import is recoverable.
func (d *DB) Import(data []byte, now time.Time) (*domain.UserState, error) {
	var env ExportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadImport, err)
	}
	if env.Version != ExportVersion || env.State == nil {
		return nil, fmt.Errorf("%w: unsupported envelope", domain.ErrBadImport)
	}
	env.State.Normalize()

	if cur, err := d.LoadState(now); err == nil {
		if err := d.saveState(cur, "pre-import"); err != nil {
			return nil, err
		}
	}
	if err := d.saveState(env.State, "import"); err != nil {
		return nil, err
	}
	return env.State, nil
}

// Reset backs up the outgoing state and replaces it with a fresh default.
func (d *DB) Reset(now time.Time) (*domain.UserState, error) {
	if cur, err := d.LoadState(now); err == nil {
		if err := d.saveState(cur, "pre-reset"); err != nil {
			return nil, err
		}
	}
	st := domain.NewUserState(now)
	if err := d.saveState(st, "reset"); err != nil {
		return nil, err
	}
	return st, nil
}

// BackupCount reports how many rotating backups are retained.
func (d *DB) BackupCount() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM backups`).Scan(&n)
	return n, err
}

func decodeState(raw string) (*domain.UserState, error) {
	var st domain.UserState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, err
	}
	if st.Attributes == nil && st.Tasks == nil {
		return nil, fmt.Errorf("empty snapshot")
	}
	st.Normalize()
	return &st, nil
}
