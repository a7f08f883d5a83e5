package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/flori92/lokali-platform-sub000/internal/app/commands"
	bookingapp "github.com/flori92/lokali-platform-sub000/internal/app/handlers/booking"
)

// Deduper remembers which event IDs were already applied, so redelivered
// payment notifications confirm a booking at most once.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// PaymentSettledHandler applies payment.settled notifications from the
// external payment widget: a settled payment confirms the pending booking it
// references. Settlement itself happens outside this system.
type PaymentSettledHandler struct {
	Commands commands.Bus
	Inbox    Deduper
	Logger   *slog.Logger
}

type paymentEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		BookingID  string `json:"booking_id"`
		PaymentRef string `json:"payment_ref"`
	} `json:"data"`
}

func (h PaymentSettledHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt paymentEnvelope
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		// Poison messages are logged and dropped, not retried.
		if h.Logger != nil {
			h.Logger.Warn("unreadable payment event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
		return nil
	}
	if evt.Type != "payment.settled.v1" {
		return nil
	}
	if evt.Data.BookingID == "" {
		return nil
	}
	if h.Inbox != nil && evt.ID != "" {
		seen, err := h.Inbox.Seen(ctx, evt.ID)
		if err != nil {
			return fmt.Errorf("inbox check: %w", err)
		}
		if seen {
			return nil
		}
	}
	cmd := bookingapp.ConfirmBookingCommand{
		BookingID:  evt.Data.BookingID,
		PaymentRef: evt.Data.PaymentRef,
	}
	if _, err := commands.Dispatch[bookingapp.ConfirmBookingCommand, *bookingapp.ConfirmBookingResult](ctx, h.Commands, cmd); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("payment settlement not applied", "booking_id", evt.Data.BookingID, "error", err)
		}
		return err
	}
	return nil
}

var _ MessageHandler = PaymentSettledHandler{}
