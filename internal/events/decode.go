package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"clinic/kit/broker"
)

var ErrUnknownEvent = errors.New("unknown event")

// Decode rebuilds a typed event from its journaled name and payload.
func Decode(name string, payload json.RawMessage) (broker.Event, error) {
	switch name {
	case AppointmentBooked{}.Name():
		return decode[AppointmentBooked](payload)
	case PaymentAuthorized{}.Name():
		return decode[PaymentAuthorized](payload)
	case AppointmentPaid{}.Name():
		return decode[AppointmentPaid](payload)
	case PaymentEscalated{}.Name():
		return decode[PaymentEscalated](payload)
	case UserRoleChanged{}.Name():
		return decode[UserRoleChanged](payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
}

func decode[T broker.Event](payload json.RawMessage) (broker.Event, error) {
	var e T
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, err
	}
	return e, nil
}
