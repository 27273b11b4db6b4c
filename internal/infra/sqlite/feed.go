package sqlite

import (
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
)

// ─── Notification feed ──────────────────────────────────────────────────────

// InsertNotification appends one notification and returns its id.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	created := n.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := d.db.Exec(
		`INSERT INTO notifications (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, created.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListNotifications returns the newest notifications, most recent first.
func (d *DB) ListNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM notifications ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		var created int64
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Body, &created, &n.Shown); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		n.CreatedAt = time.Unix(created, 0)
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountNotificationsSince reports how many notifications were recorded at
// or after the cutoff. The delivery policy uses it for its daily cap.
func (d *DB) CountNotificationsSince(cutoff time.Time) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`,
		cutoff.Unix(),
	).Scan(&n)
	return n, err
}

// MarkNotificationShown flags one notification as delivered.
func (d *DB) MarkNotificationShown(id int64) error {
	_, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	return err
}

// ─── Penalty history ────────────────────────────────────────────────────────

// InsertPenalty archives one applied penalty and returns its id.
func (d *DB) InsertPenalty(rec domain.PenaltyRecord) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO penalty_history (applied_at, inactive_days, tier, points, attribute, distributed, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.AppliedAt.Unix(), rec.InactiveDays, rec.Tier,
		rec.Points, rec.Attribute, rec.Distributed, rec.Message,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListPenalties returns the newest penalty records, most recent first.
func (d *DB) ListPenalties(limit int) ([]domain.PenaltyRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, applied_at, inactive_days, tier, points, attribute, distributed, message
		 FROM penalty_history ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PenaltyRecord
	for rows.Next() {
		var rec domain.PenaltyRecord
		var applied int64
		if err := rows.Scan(&rec.ID, &applied, &rec.InactiveDays, &rec.Tier,
			&rec.Points, &rec.Attribute, &rec.Distributed, &rec.Message); err != nil {
			return nil, err
		}
		rec.AppliedAt = time.Unix(applied, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}
