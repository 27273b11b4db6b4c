// Package notify delivers engine notifications into the persistent feed,
// subject to a delivery policy: a daily cap and quiet hours. Penalty
// notifications bypass both — losing points silently would be worse than
// an extra message.
package notify

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/zero2one-app/zero2one/internal/domain"
	"github.com/zero2one-app/zero2one/internal/infra/sqlite"
)

// Policy bounds notification delivery.
type Policy struct {
	MaxPerDay  int
	QuietStart string // "HH:MM"
	QuietEnd   string // "HH:MM"
}

// DefaultPolicy caps delivery at 10 per day with 22:00–08:00 quiet hours.
func DefaultPolicy() Policy {
	return Policy{MaxPerDay: 10, QuietStart: "22:00", QuietEnd: "08:00"}
}

// Feed implements domain.Notifier against the SQLite notification table.
type Feed struct {
	db     *sqlite.DB
	policy Policy
	now    func() time.Time
}

// NewFeed creates a feed with the default policy.
func NewFeed(db *sqlite.DB) *Feed {
	return &Feed{db: db, policy: DefaultPolicy(), now: time.Now}
}

// NewFeedWithPolicy creates a feed with a custom policy and clock.
func NewFeedWithPolicy(db *sqlite.DB, policy Policy, now func() time.Time) *Feed {
	return &Feed{db: db, policy: policy, now: now}
}

// Notify records one notification unless the policy suppresses it.
// Storage failures are logged, not propagated; notifications never block
// engine progress.
func (f *Feed) Notify(n domain.Notification) {
	now := f.now()
	n.CreatedAt = now
	n.Shown = false

	if n.Type != domain.NotifyPenalty {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		count, err := f.db.CountNotificationsSince(midnight)
		if err != nil {
			log.Printf("[notify] count failed: %v", err)
			return
		}
		if f.policy.MaxPerDay > 0 && count >= f.policy.MaxPerDay {
			return
		}
		if f.isQuietHour(now) {
			return
		}
	}

	if _, err := f.db.InsertNotification(n); err != nil {
		log.Printf("[notify] insert failed: %v", err)
	}
}

// Recent returns the newest notifications, most recent first.
func (f *Feed) Recent(limit int) ([]domain.Notification, error) {
	return f.db.ListNotifications(limit)
}

// MarkShown flags a notification as delivered.
func (f *Feed) MarkShown(id int64) error {
	return f.db.MarkNotificationShown(id)
}

// isQuietHour reports whether t falls inside the quiet window, which may
// wrap midnight.
func (f *Feed) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(f.policy.QuietStart)
	endHour, endMin := parseHHMM(f.policy.QuietEnd)

	cur := t.Hour()*60 + t.Minute()
	start := startHour*60 + startMin
	end := endHour*60 + endMin

	if start > end {
		return cur >= start || cur < end
	}
	return cur >= start && cur < end
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
