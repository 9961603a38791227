package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type EventAction string

const (
	EventCreated EventAction = "created"
	EventUpdated EventAction = "updated"
	EventDeleted EventAction = "deleted"
)

// EntityEvent é publicado após cada escrita bem sucedida.
type EntityEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Entity        string          `json:"entity"`
	EntityID      string          `json:"entity_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	FieldsChanged []string        `json:"fields_changed,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// EventType monta o nome do evento, ex: "customer.created".
func EventType(entity string, action EventAction) string {
	return strings.ToLower(entity) + "." + string(action)
}
