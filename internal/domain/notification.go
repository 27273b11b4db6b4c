package domain

import "time"

// NotificationType categorizes engine notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyChainStage  NotificationType = "chain_stage"
	NotifyChallenge   NotificationType = "challenge"
	NotifyPenalty     NotificationType = "penalty"
	NotifyEvent       NotificationType = "event"
	NotifyJob         NotificationType = "job"
)

// Notification is one discrete message the engine emits for the
// presentation layer. The engine does not depend on how or whether it
// is displayed.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// Notifier is the sink the engines emit notifications into.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier drops all notifications. Used in tests and headless runs.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// PenaltyRecord archives one applied inactivity penalty.
type PenaltyRecord struct {
	ID           int64     `json:"id"`
	AppliedAt    time.Time `json:"applied_at"`
	InactiveDays int       `json:"inactive_days"`
	Tier         int       `json:"tier"`
	Points       float64   `json:"points"`
	Attribute    string    `json:"attribute,omitempty"` // empty for distributed penalties
	Distributed  bool      `json:"distributed"`
	Message      string    `json:"message"`
}
