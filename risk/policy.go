package risk

// Policy holds the loss limits an unhedged trade is checked against. A zero
// limit disables that check.
type Policy struct {
	// Currency that losses are reported in, base or quote of the instrument.
	Currency string `json:"currency" yaml:"currency" default:"USD"`

	MaxWorstLossPct    float64 `json:"max_worst_loss_pct" yaml:"max_worst_loss_pct" default:"0.04"`
	MaxExpectedLossPct float64 `json:"max_expected_loss_pct" yaml:"max_expected_loss_pct" default:"0.01"`
}
