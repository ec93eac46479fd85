package interfaces

import (
	"context"
	"time"

	"github.com/YelzhanWeb/waste-tracker/internal/domain"
)

type EventKind string

const (
	EventEntryLogged  EventKind = "waste.logged"
	EventEntryDeleted EventKind = "waste.deleted"
)

// Сообщения RabbitMQ
type WasteEventMessage struct {
	Kind          EventKind `json:"kind"`
	EntryID       string    `json:"entry_id"`
	Station       string    `json:"station,omitempty"`
	WasteType     string    `json:"waste_type,omitempty"`
	ItemName      string    `json:"item_name,omitempty"`
	QuantityType  string    `json:"quantity_type,omitempty"`
	QuantityValue float64   `json:"quantity_value,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewLoggedMessage builds the event published after an append.
func NewLoggedMessage(e domain.WasteEntry, at time.Time) WasteEventMessage {
	return WasteEventMessage{
		Kind:          EventEntryLogged,
		EntryID:       e.ID,
		Station:       string(e.Station),
		WasteType:     string(e.WasteType),
		ItemName:      e.ItemName,
		QuantityType:  string(e.QuantityType),
		QuantityValue: e.QuantityValue,
		OccurredAt:    at,
	}
}

// Интерфейсы Messaging (Adapter/RabbitMQ)
type EventPublisher interface {
	PublishWasteEvent(ctx context.Context, msg WasteEventMessage) error
}

type EventConsumer interface {
	ConsumeWasteEvents(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
