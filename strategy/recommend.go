// strategy/recommend.go
package strategy

import (
	"fmt"

	"github.com/rustyeddy/hedger/market"
)

// Strategy is a recommended hedging action for a pending trade.
type Strategy int

const (
	// None is returned for a direction/outcome pair with no mapping.
	None Strategy = iota
	SellForward
	HoldSpot
	BuyForward
	BuySpot
	Monitor
)

// Kind groups strategies by how they treat exchange-rate risk.
type Kind int

const (
	Neutral Kind = iota
	// Hedge locks the rate in ahead of completion.
	Hedge
	// Opportunistic leaves the position open to capture a favourable move.
	Opportunistic
)

var labels = map[Strategy]string{
	None:        "No strategy",
	SellForward: "Sell forward contract (hedge downside)",
	HoldSpot:    "Hold spot, sell later (capture upside)",
	BuyForward:  "Buy forward contract (hedge upside)",
	BuySpot:     "Buy spot now, reconsider if rate falls (capture downside)",
	Monitor:     "Monitor, respond flexibly",
}

type key struct {
	dir market.Direction
	out market.Outcome
}

var table = map[key]Strategy{
	{market.Export, market.Decrease}: SellForward,
	{market.Export, market.Increase}: HoldSpot,
	{market.Export, market.Stable}:   Monitor,
	{market.Import, market.Increase}: BuyForward,
	{market.Import, market.Decrease}: BuySpot,
	{market.Import, market.Stable}:   Monitor,
}

// Recommend maps the dominant outcome and trade direction to a strategy.
// Pairs outside the table yield None rather than a default action.
func Recommend(dominant market.Outcome, dir market.Direction) Strategy {
	s, ok := table[key{dir, dominant}]
	if !ok {
		return None
	}
	return s
}

func (s Strategy) String() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Strategy) Kind() Kind {
	switch s {
	case SellForward, BuyForward:
		return Hedge
	case HoldSpot, BuySpot:
		return Opportunistic
	default:
		return Neutral
	}
}

func (k Kind) String() string {
	switch k {
	case Hedge:
		return "hedge"
	case Opportunistic:
		return "opportunistic"
	default:
		return "neutral"
	}
}

// Rationale explains a recommendation to the person booking the trade.
func Rationale(s Strategy, dir market.Direction) string {
	switch s {
	case SellForward:
		return fmt.Sprintf("The main expectation is a falling rate. As an %s business, consider selling "+
			"forward to hedge against the foreign currency you will receive losing value.", lower(dir))
	case BuyForward:
		return fmt.Sprintf("The main expectation is a rising rate. As an %s business, consider buying "+
			"forward to hedge against the foreign currency you must pay becoming more expensive.", lower(dir))
	case HoldSpot:
		return "The main expectation is a rising rate. Holding the currency and selling after the rise " +
			"may capture the upside, at the cost of staying exposed."
	case BuySpot:
		return "The main expectation is a falling rate. Buying spot now and buying again if the rate " +
			"falls may capture the downside, at the cost of staying exposed."
	case Monitor:
		return "The main expectation is a stable rate. Watch the market closely and respond flexibly."
	default:
		return "No recommendation is available for this trade."
	}
}

func lower(dir market.Direction) string {
	b, err := dir.MarshalText()
	if err != nil {
		return dir.String()
	}
	return string(b)
}
