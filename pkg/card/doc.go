// Package card provides payment card field predicates: the Luhn checksum and
// pattern checks for card number, expiry month, expiry year and CVV.
//
// The predicates accept anything a form may hand over (strings, integers,
// floats, json.Number) and never panic:
//
//	card.ValidCardNumber("4111111111111111") // true
//	card.ValidExpireYear(2025)               // true
//	card.ValidCVV("12")                      // false
//
// They have no dependencies and can be used standalone or registered as
// string formats with the schema adapters (see Formats).
package card
