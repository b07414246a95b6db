package entity

import "time"

type ActivityLevel string

const (
	ActivityInfo    ActivityLevel = "INFO"
	ActivitySuccess ActivityLevel = "SUCCESS"
	ActivityWarn    ActivityLevel = "WARN"
	ActivityError   ActivityLevel = "ERROR"
)

type ActivityEntry struct {
	ID      string        `json:"id"`
	Time    time.Time     `json:"time"`
	Level   ActivityLevel `json:"level"`
	Source  string        `json:"source"`
	Message string        `json:"message"`
}

type EventType string

const (
	EventPermitCreated     EventType = "permit.created"
	EventPermitUpdated     EventType = "permit.updated"
	EventPermitDeleted     EventType = "permit.deleted"
	EventConditionCreated  EventType = "condition.created"
	EventConditionUpdated  EventType = "condition.updated"
	EventConditionDeleted  EventType = "condition.deleted"
	EventEvidenceUploaded  EventType = "evidence.uploaded"
	EventEvidenceDeleted   EventType = "evidence.deleted"
	EventStatusesRefreshed EventType = "condition.statuses_refreshed"
)

type Event struct {
	Type       EventType `json:"type"`
	EntityID   string    `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Actor      string    `json:"actor,omitempty"`
}

type Message struct {
	Type        string
	Subject     string
	Message     string
	Recipients  []string
	ContentType string
}
