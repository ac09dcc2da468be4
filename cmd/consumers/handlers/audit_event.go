package handlers

import (
	"context"

	"clinic/kit/broker"
)

type AuditorContract interface {
	Record(ctx context.Context, evt broker.Event) error
}

type AuditEvent struct {
	audit AuditorContract
	dlq   DLQContract
}

func NewAuditEvent(a AuditorContract, dlq DLQContract) *AuditEvent {
	return &AuditEvent{audit: a, dlq: dlq}
}

// HandleAny records every event it is subscribed to. A failed write goes to
// the dead letter queue instead of failing the publisher.
func (h *AuditEvent) HandleAny(ctx context.Context, evt broker.Event) error {
	if h.audit == nil {
		return nil
	}
	if err := h.audit.Record(ctx, evt); err != nil {
		if h.dlq != nil {
			h.dlq.SendToDLQ(ctx, evt.Name(), err.Error(), evt)
		}
		return err
	}
	return nil
}
