package models

import "time"

const (
	AuditTopicCreated  = "topic_created"
	AuditTopicUpdated  = "topic_updated"
	AuditTopicClosed   = "topic_closed"
	AuditMessageAdded  = "message_added"
	AuditMessageRemove = "message_removed"
)

type AuditLog struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
