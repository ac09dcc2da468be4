package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidService  = errors.New("invalid service")
	ErrServiceNotFound = errors.New("service not found")
)

type UpsertRequest struct {
	ID          string
	Title       string
	Price       string
	Currency    string
	Description string
}

func ValidateServiceID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidService
	}
	return nil
}

func ValidateUpsertRequest(r UpsertRequest) error {
	if err := ValidateServiceID(r.ID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrInvalidService
	}
	if _, err := ParsePrice(r.Price); err != nil {
		return err
	}
	return nil
}

// ParsePrice accepts positive prices with at most two decimal places.
func ParsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidService
	}
	if !p.IsPositive() {
		return decimal.Zero, ErrInvalidService
	}
	cents := p.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return decimal.Zero, ErrInvalidService
	}
	return p, nil
}
