package handlers

import (
	"context"
	"fmt"

	"clinic/internal/events"
	"clinic/kit/broker"
)

type NotifierContract interface {
	SendReceipt(ctx context.Context, evt events.AppointmentPaid) bool
}

type NotificationEvent struct {
	notifier NotifierContract
}

func NewNotificationEvent(n NotifierContract) *NotificationEvent {
	return &NotificationEvent{notifier: n}
}

func (h *NotificationEvent) HandleAppointmentPaid(ctx context.Context, evt broker.Event) error {
	e, ok := evt.(events.AppointmentPaid)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedEventType, evt)
	}
	if h.notifier == nil {
		return nil
	}
	h.notifier.SendReceipt(ctx, e)
	return nil
}
