// market/instruments.go
package market

import "fmt"

// DefaultInstrument is the only pair the outlook model is calibrated for.
const DefaultInstrument = "USD_KRW"

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	// RateDecimals is how many decimals a quote is displayed with.
	RateDecimals int
	// MinimumTradeSize is in base currency units.
	MinimumTradeSize float64
}

var Instruments = map[string]InstrumentMeta{
	"USD_KRW": {
		Name:             "USD_KRW",
		BaseCurrency:     "USD",
		QuoteCurrency:    "KRW",
		RateDecimals:     0,
		MinimumTradeSize: 1000,
	},
}

// Lookup returns the metadata for instrument or an error if it is not known.
func Lookup(instrument string) (InstrumentMeta, error) {
	meta, ok := Instruments[instrument]
	if !ok {
		return InstrumentMeta{}, fmt.Errorf("unknown instrument %s", instrument)
	}
	return meta, nil
}

// Pair renders the instrument the way dealers quote it, e.g. USD/KRW.
func (m InstrumentMeta) Pair() string {
	return m.BaseCurrency + "/" + m.QuoteCurrency
}

// QuoteValue converts an amount of base currency to quote currency at rate.
func QuoteValue(amount, rate float64) float64 {
	return amount * rate
}
