package main

import (
	"context"
	"errors"

	"clinic/internal/events"
	"clinic/kit/broker"
	"clinic/kit/db"
)

type summary struct {
	Records int
	Skipped int
	Failed  int
	ByEvent map[string]int
}

type recordSource interface {
	All(ctx context.Context) []db.Record
}

// replay feeds every journaled record through bus in append order. Records
// that cannot be decoded are skipped; handler failures are counted and the
// walk continues.
func replay(ctx context.Context, src recordSource, bus *broker.Bus) (summary, error) {
	s := summary{ByEvent: make(map[string]int)}
	for _, rec := range src.All(ctx) {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		s.Records++

		evt, err := events.Decode(rec.EventName, rec.Payload)
		if err != nil {
			s.Skipped++
			if !errors.Is(err, events.ErrUnknownEvent) {
				return s, errors.Join(db.ErrInternal, err)
			}
			continue
		}
		s.ByEvent[rec.EventName]++
		if errs := bus.Publish(ctx, evt); len(errs) > 0 {
			s.Failed++
		}
	}
	return s, nil
}
