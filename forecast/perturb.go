package forecast

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/hedger/market"
)

// RandSource yields uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Bounds are the fractional ranges predicted rates are drawn from.
type Bounds struct {
	DecreaseMin  float64 `json:"decrease_min" yaml:"decrease_min" default:"0.02"`
	DecreaseMax  float64 `json:"decrease_max" yaml:"decrease_max" default:"0.05"`
	IncreaseMin  float64 `json:"increase_min" yaml:"increase_min" default:"0.02"`
	IncreaseMax  float64 `json:"increase_max" yaml:"increase_max" default:"0.05"`
	StableJitter float64 `json:"stable_jitter" yaml:"stable_jitter" default:"0.005"`
}

func DefaultBounds() Bounds {
	return Bounds{
		DecreaseMin:  0.02,
		DecreaseMax:  0.05,
		IncreaseMin:  0.02,
		IncreaseMax:  0.05,
		StableJitter: 0.005,
	}
}

// Validate rejects bounds under which a decrease could end up at or above
// the current rate (or an increase at or below it).
func (b Bounds) Validate() error {
	if b.DecreaseMin <= 0 || b.DecreaseMin > b.DecreaseMax {
		return fmt.Errorf("decrease range must satisfy 0 < min <= max, got [%g, %g]", b.DecreaseMin, b.DecreaseMax)
	}
	if b.DecreaseMax >= 1 {
		return fmt.Errorf("decrease_max must be below 1, got %g", b.DecreaseMax)
	}
	if b.IncreaseMin <= 0 || b.IncreaseMin > b.IncreaseMax {
		return fmt.Errorf("increase range must satisfy 0 < min <= max, got [%g, %g]", b.IncreaseMin, b.IncreaseMax)
	}
	if b.StableJitter < 0 || b.StableJitter >= 1 {
		return fmt.Errorf("stable_jitter must be in [0, 1), got %g", b.StableJitter)
	}
	return nil
}

// Perturber samples a predicted rate per outcome around the current rate.
type Perturber struct {
	Bounds Bounds
	Rand   RandSource
}

// Rates draws fresh predicted rates. For the Expired bucket nothing is drawn
// and every outcome predicts the current rate exactly.
func (p Perturber) Rates(current float64, b Bucket) Rates {
	if b == Expired {
		return Rates{current, current, current}
	}

	// Draw order is fixed so a seeded source replays the same rates.
	u1 := uniform(p.Rand, p.Bounds.DecreaseMin, p.Bounds.DecreaseMax)
	u2 := uniform(p.Rand, p.Bounds.IncreaseMin, p.Bounds.IncreaseMax)
	u3 := uniform(p.Rand, -p.Bounds.StableJitter, p.Bounds.StableJitter)

	var r Rates
	r[market.Decrease] = current * (1 - u1)
	r[market.Increase] = current * (1 + u2)
	r[market.Stable] = current * (1 + u3)
	return r
}

func uniform(r RandSource, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// lockedRand serializes access to a *rand.Rand so one source can be shared
// by concurrent analyses.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewSystemRand returns a goroutine-safe source seeded from crypto/rand.
func NewSystemRand() RandSource {
	return NewSeededRand(readSeed(cryptoRand.Reader))
}

// readSeed falls back to the clock when entropy cannot be read.
func readSeed(r io.Reader) int64 {
	var seed int64
	if err := binary.Read(r, binary.LittleEndian, &seed); err != nil {
		return time.Now().UnixNano()
	}
	return seed
}

// NewSeededRand returns a goroutine-safe source that replays the same
// sequence for the same seed.
func NewSeededRand(seed int64) RandSource {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}
