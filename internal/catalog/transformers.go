package catalog

import "strings"

func ToService(req UpsertRequest) *Service {
	price, _ := ParsePrice(req.Price)
	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Service{
		ID:          req.ID,
		Title:       strings.TrimSpace(req.Title),
		Price:       price,
		Currency:    currency,
		Description: req.Description,
	}
}
