package pricing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoPrice is returned when a source has no quote for an instrument.
var ErrNoPrice = errors.New("price not found")

// TickSource supplies the current market quote for an instrument.
type TickSource interface {
	GetTick(ctx context.Context, instrument string) (Tick, error)
}

type Tick struct {
	Instrument string    `json:"instrument"`
	Time       time.Time `json:"time"`
	Bid        float64   `json:"bid"`
	Ask        float64   `json:"ask"`
}

func (t Tick) Mid() float64 {
	if t.Bid == 0 && t.Ask == 0 {
		return 0
	}
	return (t.Bid + t.Ask) / 2
}

func (t Tick) Spread() float64 {
	return t.Ask - t.Bid
}

// Fixed returns a tick with no spread, used when only a single reference
// rate is known.
func Fixed(instrument string, rate float64, at time.Time) Tick {
	return Tick{Instrument: instrument, Time: at, Bid: rate, Ask: rate}
}

// CurrentRate fetches the mid rate for instrument and rejects anything that
// is not a positive number.
func CurrentRate(ctx context.Context, src TickSource, instrument string) (Tick, float64, error) {
	tick, err := src.GetTick(ctx, instrument)
	if err != nil {
		return Tick{}, 0, fmt.Errorf("get %s rate: %w", instrument, err)
	}
	mid := tick.Mid()
	if mid <= 0 {
		return Tick{}, 0, fmt.Errorf("get %s rate: non-positive rate %g", instrument, mid)
	}
	return tick, mid, nil
}

// TickStore is an in-memory TickSource holding the latest tick per instrument.
type TickStore struct {
	mu    sync.RWMutex
	ticks map[string]Tick
}

func NewTickStore(ticks ...Tick) *TickStore {
	ps := &TickStore{ticks: make(map[string]Tick)}
	for _, t := range ticks {
		ps.Set(t)
	}
	return ps
}

func (ps *TickStore) Set(p Tick) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.ticks[p.Instrument] = p
}

func (ps *TickStore) Get(instr string) (Tick, error) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	p, ok := ps.ticks[instr]
	if !ok {
		return Tick{}, ErrNoPrice
	}
	return p, nil
}

func (ps *TickStore) GetTick(ctx context.Context, instrument string) (Tick, error) {
	if err := ctx.Err(); err != nil {
		return Tick{}, err
	}
	return ps.Get(instrument)
}
