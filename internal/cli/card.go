package cli

import (
	"github.com/aretw0/formcheck/pkg/card"
)

// CardCheck is the outcome of one card field check.
type CardCheck struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// CheckCard runs the card predicates over the non-empty inputs, in form order.
func CheckCard(number, month, year, cvv string) []CardCheck {
	inputs := []struct {
		field string
		value string
		check func(any) bool
	}{
		{"number", number, card.ValidCardNumber},
		{"month", month, card.ValidExpireMonth},
		{"year", year, card.ValidExpireYear},
		{"cvv", cvv, card.ValidCVV},
	}

	var out []CardCheck
	for _, in := range inputs {
		if in.value == "" {
			continue
		}
		out = append(out, CardCheck{Field: in.field, Value: in.value, Valid: in.check(in.value)})
	}
	return out
}
