package market

import (
	"fmt"
)

// Convert expresses an amount held in the instrument's quote currency in
// currency, using rate (quote units per base unit).
func Convert(instrument string, quoteAmount, rate float64, currency string) (float64, error) {
	meta, err := Lookup(instrument)
	if err != nil {
		return 0, err
	}

	// Case 1: already in the quote currency (KRW for USD_KRW)
	if meta.QuoteCurrency == currency {
		return quoteAmount, nil
	}

	// Case 2: back to the base currency (USD for USD_KRW)
	if meta.BaseCurrency == currency {
		if rate <= 0 {
			return 0, fmt.Errorf("convert %s to %s: rate must be positive, got %g", meta.QuoteCurrency, currency, rate)
		}
		return quoteAmount / rate, nil
	}

	return 0, fmt.Errorf(
		"cross conversion not implemented for %s → %s",
		meta.QuoteCurrency,
		currency,
	)
}
