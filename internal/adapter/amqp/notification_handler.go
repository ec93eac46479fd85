package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/domain"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

// NotificationHandler prints waste events for the subscribe command.
type NotificationHandler struct {
	out    io.Writer
	logger logger.Logger
}

func NewNotificationHandler(out io.Writer, logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		out:    out,
		logger: logger,
	}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.WasteEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse waste event", "", nil, err)
		return err
	}

	h.logger.Debug("notification_received", "Received waste event", msg.EntryID, map[string]interface{}{
		"kind": msg.Kind,
	})

	switch msg.Kind {
	case interfaces.EventEntryLogged:
		fmt.Fprintf(h.out, "[%s] Logged at %s: %s - %v %s (%s)\n",
			msg.OccurredAt.Format("2006-01-02 15:04"),
			domain.Station(msg.Station).Label(),
			msg.ItemName, msg.QuantityValue, msg.QuantityType,
			domain.WasteType(msg.WasteType).Label())
	case interfaces.EventEntryDeleted:
		fmt.Fprintf(h.out, "[%s] Entry %s deleted\n", msg.OccurredAt.Format("2006-01-02 15:04"), msg.EntryID)
	default:
		return fmt.Errorf("unknown event kind %q", msg.Kind)
	}

	return nil
}
