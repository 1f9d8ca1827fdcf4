package broadcast

import (
	"encoding/json"
	"time"
)

type Type string

const (
	EntityCreated    Type = "entity-created"
	EntityUpdated    Type = "entity-updated"
	EntityDeleted    Type = "entity-deleted"
	StatusChanged    Type = "status-changed"
	ResourceAssigned Type = "resource-assigned"
	DataRefreshed    Type = "data-refreshed"

	// All subscribes to every message type, including types this build does
	// not know about.
	All Type = "*"
)

func (t Type) Known() bool {
	switch t {
	case EntityCreated, EntityUpdated, EntityDeleted, StatusChanged, ResourceAssigned, DataRefreshed:
		return true
	}
	return false
}

// Message is the envelope exchanged between sessions. Payload is advisory:
// receivers re-read their store instead of trusting it.
type Message struct {
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
	SenderID  string          `json:"senderId"`
}

func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

// EntityRef is the payload the services attach to their notifications.
type EntityRef struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
	// Days lists the calendar days (YYYY-MM-DD) whose views may be stale.
	Days []string `json:"days,omitempty"`
}
