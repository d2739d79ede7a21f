package card

// String format names under which the card predicates are exposed to schema libraries.
const (
	FormatNumber      = "card-number"
	FormatExpireMonth = "card-expire-month"
	FormatExpireYear  = "card-expire-year"
	FormatCVV         = "card-cvv"
)

// Predicate checks a single form value.
type Predicate func(x any) bool

// Formats returns the card predicates keyed by format name.
func Formats() map[string]Predicate {
	return map[string]Predicate{
		FormatNumber:      ValidCardNumber,
		FormatExpireMonth: ValidExpireMonth,
		FormatExpireYear:  ValidExpireYear,
		FormatCVV:         ValidCVV,
	}
}
