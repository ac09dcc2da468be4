package catalog

import "github.com/shopspring/decimal"

const DefaultCurrency = "usd"

// Service is a bookable catalog entry. Price is in major units (120.50 usd).
type Service struct {
	ID          string
	Title       string
	Price       decimal.Decimal
	Currency    string
	Description string
}

// MinorUnits returns the price in the smallest currency unit, the amount
// payment gateways expect.
func (s Service) MinorUnits() int64 {
	return s.Price.Shift(2).IntPart()
}
