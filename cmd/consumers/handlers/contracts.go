package handlers

import (
	"context"
	"errors"

	"clinic/kit/broker"
)

var ErrUnexpectedEventType = errors.New("unexpected event type")

// DLQContract receives events a handler could not process.
type DLQContract interface {
	SendToDLQ(ctx context.Context, topic string, reason string, payload any)
}

// BusContract defines the publish responsibility used by consumers handlers.
type BusContract = broker.Publisher
