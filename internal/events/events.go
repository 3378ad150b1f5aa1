package events

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	EquipmentCreated Type = "equipment.created"
	EquipmentUpdated Type = "equipment.updated"
	EquipmentDeleted Type = "equipment.deleted"

	InspectionCreated   Type = "inspection.created"
	InspectionUpdated   Type = "inspection.updated"
	InspectionCompleted Type = "inspection.completed"

	BacklogCreated     Type = "backlog.created"
	BacklogUpdated     Type = "backlog.updated"
	BacklogBulkUpdated Type = "backlog.bulkUpdated"

	WorkOrderCreated Type = "workorder.created"
	WorkOrderUpdated Type = "workorder.updated"
	WorkOrderDeleted Type = "workorder.deleted"

	PMCreated   Type = "pm.created"
	PMUpdated   Type = "pm.updated"
	PMCompleted Type = "pm.completed"
)

// Event is the envelope pushed to the sink on every meaningful state
// transition. Payload is the full updated entity, or its id for deletions.
type Event struct {
	ID      string    `json:"id"`
	Type    Type      `json:"type"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

func New(t Type, payload any) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    t,
		At:      time.Now().UTC(),
		Payload: payload,
	}
}

// Publisher is the injected event sink. Delivery is fire-and-forget,
// at-most-once; implementations must never block the caller.
type Publisher interface {
	Publish(e Event)
}

// Nop discards every event. Used in tests and as a safe default.
type Nop struct{}

func (Nop) Publish(Event) {}
