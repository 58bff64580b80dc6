package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/market"
)

// ErrInvalidTrade wraps every trade validation failure.
var ErrInvalidTrade = errors.New("invalid trade")

const DateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(market.Direction)
		return ok && d.Valid()
	})
}

// Date is a calendar date that reads and writes as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalJSON and UnmarshalJSON shadow the RFC 3339 methods promoted from
// the embedded time.Time.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Trade is a pending foreign-currency trade submitted for analysis. Amount is
// in the instrument's base currency.
type Trade struct {
	Direction      market.Direction `json:"direction" yaml:"direction" validate:"required,direction"`
	Amount         float64          `json:"amount" yaml:"amount" validate:"required,gte=1000"`
	StartDate      Date             `json:"start_date" yaml:"start_date"`
	CompletionDate Date             `json:"completion_date" yaml:"completion_date"`
}

// Validate checks the trade as seen from today. Completion must fall strictly
// after today; the forecast engine itself would accept any date.
func (t Trade) Validate(today time.Time) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTrade, describe(err))
	}
	if t.CompletionDate.IsZero() {
		return fmt.Errorf("%w: completion_date is required", ErrInvalidTrade)
	}
	if forecast.DaysUntil(today, t.CompletionDate.Time) <= 0 {
		return fmt.Errorf("%w: completion_date %s must be after %s",
			ErrInvalidTrade, t.CompletionDate, DateOf(today))
	}
	if !t.StartDate.IsZero() && t.StartDate.After(t.CompletionDate.Time) {
		return fmt.Errorf("%w: start_date %s is after completion_date %s",
			ErrInvalidTrade, t.StartDate, t.CompletionDate)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		case "direction":
			msgs = append(msgs, fmt.Sprintf("%s must be export or import", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
