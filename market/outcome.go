package market

import (
	"fmt"
	"strings"
)

// Outcome is the direction an exchange rate moves by the time a trade settles.
type Outcome int

const (
	Decrease Outcome = iota
	Increase
	Stable

	NumOutcomes = 3
)

// Outcomes lists every outcome in canonical order. Anything that has to pick
// between outcomes with equal weight walks this slice front to back.
var Outcomes = [NumOutcomes]Outcome{Decrease, Increase, Stable}

func (o Outcome) String() string {
	switch o {
	case Decrease:
		return "Decrease"
	case Increase:
		return "Increase"
	case Stable:
		return "Stable"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Valid reports whether o is one of the three defined outcomes.
func (o Outcome) Valid() bool {
	return o >= Decrease && o <= Stable
}

func (o Outcome) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid outcome %d", int(o))
	}
	return []byte(strings.ToLower(o.String())), nil
}

func (o *Outcome) UnmarshalText(b []byte) error {
	v, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decrease", "down", "하락":
		return Decrease, nil
	case "increase", "up", "상승":
		return Increase, nil
	case "stable", "flat", "보합":
		return Stable, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q (want decrease|increase|stable)", s)
	}
}

// Direction is the side of a foreign-currency trade from the point of view of
// the company booking it.
type Direction int

const (
	// UnknownDirection is the zero value; a trade must name its side.
	UnknownDirection Direction = iota
	// Export receives foreign currency at completion.
	Export
	// Import pays foreign currency at completion.
	Import
)

func (d Direction) String() string {
	switch d {
	case Export:
		return "Export"
	case Import:
		return "Import"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) Valid() bool {
	return d == Export || d == Import
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(strings.ToLower(d.String())), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "export", "수출":
		return Export, nil
	case "import", "수입":
		return Import, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want export|import)", s)
	}
}
