package domain

import "time"

// NotificationKind names a marketplace event worth telling someone about.
type NotificationKind string

const (
	NotifyAuditionPosted       NotificationKind = "audition.posted"
	NotifyApplicationSubmitted NotificationKind = "application.submitted"
	NotifyApplicationDecided   NotificationKind = "application.decided"
	NotifyPromotionPosted      NotificationKind = "promotion.posted"
)

// Notification is emitted after a successful write. ShardKey keeps events for
// the same audition or promotion in order.
type Notification struct {
	Kind       NotificationKind  `json:"kind"`
	ShardKey   string            `json:"shard_key"`
	SubjectID  string            `json:"subject_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
