package forecast

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"
	"testing/iotest"
	"time"

	"github.com/rustyeddy/hedger/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same draw.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// seqRand replays a fixed list of draws and counts calls.
type seqRand struct {
	vals  []float64
	calls int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.calls%len(s.vals)]
	s.calls++
	return v
}

var today = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func TestBucketFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days int
		want Bucket
	}{
		{-400, Expired},
		{-1, Expired},
		{0, Expired},
		{1, Short},
		{30, Short},
		{31, Medium},
		{90, Medium},
		{91, Long},
		{10_000, Long},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.days), "days=%d", tt.days)
	}
}

func TestBucketsPartitionWithoutGaps(t *testing.T) {
	t.Parallel()

	prev := BucketFor(-1000)
	for d := -999; d <= 1000; d++ {
		b := BucketFor(d)
		// buckets only ever move forward, one step at a time
		assert.True(t, b == prev || b == prev+1, "days=%d jumped from %s to %s", d, prev, b)
		prev = b
	}
	assert.Equal(t, Long, prev)
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	seoul := time.FixedZone("KST", 9*3600)

	assert.Equal(t, 90, DaysUntil(today, today.AddDate(0, 0, 90)))
	assert.Equal(t, 0, DaysUntil(today, time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, -3, DaysUntil(today, today.AddDate(0, 0, -3)))
	assert.Equal(t, 1, DaysUntil(today, time.Date(2026, 10, 17, 0, 0, 0, 0, seoul)))
}

func TestDistributionSumsToOne(t *testing.T) {
	t.Parallel()

	for _, b := range Buckets {
		d := DistributionFor(b)
		assert.InDelta(t, 1.0, d.Sum(), 1e-9, "bucket %s", b)
		for _, p := range d {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestDistributionTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Distribution{0, 0, 1}, DistributionFor(Expired))
	assert.Equal(t, Distribution{0.40, 0.50, 0.10}, DistributionFor(Short))
	assert.Equal(t, Distribution{0.55, 0.35, 0.10}, DistributionFor(Medium))
	assert.Equal(t, Distribution{0.65, 0.25, 0.10}, DistributionFor(Long))
}

func TestBoundsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(b *Bounds)
		wantErr bool
		errMsg  string
	}{
		{name: "defaults", mutate: func(b *Bounds) {}},
		{name: "zero decrease min", mutate: func(b *Bounds) { b.DecreaseMin = 0 }, wantErr: true, errMsg: "decrease range"},
		{name: "decrease min above max", mutate: func(b *Bounds) { b.DecreaseMin = 0.1 }, wantErr: true, errMsg: "decrease range"},
		{name: "decrease max at one", mutate: func(b *Bounds) { b.DecreaseMax = 1 }, wantErr: true, errMsg: "decrease_max"},
		{name: "negative increase", mutate: func(b *Bounds) { b.IncreaseMin = -0.01 }, wantErr: true, errMsg: "increase range"},
		{name: "negative jitter", mutate: func(b *Bounds) { b.StableJitter = -0.001 }, wantErr: true, errMsg: "stable_jitter"},
		{name: "zero jitter", mutate: func(b *Bounds) { b.StableJitter = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBounds()
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPerturberExpiredCollapsesToCurrent(t *testing.T) {
	t.Parallel()

	src := &seqRand{vals: []float64{0.3}}
	p := Perturber{Bounds: DefaultBounds(), Rand: src}

	got := p.Rates(1353, Expired)
	assert.Equal(t, Rates{1353, 1353, 1353}, got)
	assert.Equal(t, 0, src.calls)
}

func TestPerturberFixedDraws(t *testing.T) {
	t.Parallel()

	p := Perturber{Bounds: DefaultBounds(), Rand: fixedRand(0)}
	got := p.Rates(1000, Short)
	assert.InDelta(t, 980, got.Of(market.Decrease), 1e-9)
	assert.InDelta(t, 1020, got.Of(market.Increase), 1e-9)
	assert.InDelta(t, 995, got.Of(market.Stable), 1e-9)

	p.Rand = fixedRand(0.5)
	got = p.Rates(1000, Long)
	assert.InDelta(t, 965, got.Of(market.Decrease), 1e-9)
	assert.InDelta(t, 1035, got.Of(market.Increase), 1e-9)
	assert.InDelta(t, 1000, got.Of(market.Stable), 1e-9)
}

func TestPerturberDrawsThreeValuesInOrder(t *testing.T) {
	t.Parallel()

	src := &seqRand{vals: []float64{0, 1, 0.5}}
	p := Perturber{Bounds: DefaultBounds(), Rand: src}

	got := p.Rates(100, Medium)
	assert.Equal(t, 3, src.calls)
	assert.InDelta(t, 98, got.Of(market.Decrease), 1e-9)
	assert.InDelta(t, 105, got.Of(market.Increase), 1e-9)
	assert.InDelta(t, 100, got.Of(market.Stable), 1e-9)
}

func TestPerturberBoundsHold(t *testing.T) {
	t.Parallel()

	current := 1353.0
	p := Perturber{Bounds: DefaultBounds(), Rand: NewSeededRand(42)}

	for i := 0; i < 5000; i++ {
		b := Buckets[1+i%3]
		r := p.Rates(current, b)

		assert.Less(t, r.Of(market.Decrease), current)
		assert.Greater(t, r.Of(market.Increase), current)
		assert.GreaterOrEqual(t, r.Of(market.Decrease), current*0.95-1e-9)
		assert.LessOrEqual(t, r.Of(market.Decrease), current*0.98+1e-9)
		assert.GreaterOrEqual(t, r.Of(market.Increase), current*1.02-1e-9)
		assert.LessOrEqual(t, r.Of(market.Increase), current*1.05+1e-9)
		assert.InDelta(t, current, r.Of(market.Stable), current*0.005+1e-9)
	}
}

func TestReadSeed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(42)))
	assert.Equal(t, int64(42), readSeed(&buf))

	before := time.Now().UnixNano()
	seed := readSeed(iotest.ErrReader(errors.New("no entropy")))
	assert.GreaterOrEqual(t, seed, before)

	short := readSeed(bytes.NewReader([]byte{1, 2, 3}))
	assert.GreaterOrEqual(t, short, before)

	assert.NotNil(t, NewSystemRand())
}

func TestSeededRandReplays(t *testing.T) {
	t.Parallel()

	a := NewEngine(DefaultBounds(), NewSeededRand(7)).ForecastDays(45, 1353)
	b := NewEngine(DefaultBounds(), NewSeededRand(7)).ForecastDays(45, 1353)
	assert.Equal(t, a, b)
}

func TestNewEngineDefaultsToSystemRand(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultBounds(), nil)
	r := e.ForecastDays(10, 1353)
	assert.Less(t, r.Rates.Of(market.Decrease), 1353.0)
}

func TestForecastExpired(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultBounds(), NewSeededRand(1))

	for _, completion := range []time.Time{today, today.AddDate(0, 0, -30)} {
		r := e.Forecast(today, completion, 1353)
		assert.Equal(t, Expired, r.Bucket)
		assert.Equal(t, 1.0, r.Probabilities.Of(market.Stable))
		for _, o := range market.Outcomes {
			assert.Equal(t, 1353.0, r.Rates.Of(o))
		}
	}
}

func TestForecastNinetyDaysOut(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultBounds(), NewSeededRand(3))
	r := e.Forecast(today, today.AddDate(0, 0, 90), 1353)

	assert.Equal(t, 90, r.Days)
	assert.Equal(t, Medium, r.Bucket)
	assert.Equal(t, 1353.0, r.CurrentRate)
	assert.Equal(t, 0.55, r.Probabilities.Of(market.Decrease))
	assert.Equal(t, 0.35, r.Probabilities.Of(market.Increase))
	assert.Equal(t, 0.10, r.Probabilities.Of(market.Stable))
	assert.Less(t, r.Rates.Of(market.Decrease), 1353.0)
	assert.Greater(t, r.Rates.Of(market.Increase), 1353.0)
}

func TestSelectDominant(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultBounds(), fixedRand(0))

	tests := []struct {
		name  string
		days  int
		want  market.Outcome
		label string
	}{
		{"expired", 0, market.Stable, "Stable expected (probability 100.0%)"},
		{"short", 14, market.Increase, "Increase expected (probability 50.0%)"},
		{"medium", 90, market.Decrease, "Decrease expected (probability 55.0%)"},
		{"long", 365, market.Decrease, "Decrease expected (probability 65.0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.ForecastDays(tt.days, 1353)
			got := SelectDominant(r)
			assert.Equal(t, tt.want, got.Outcome)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, r.Rates.Of(tt.want), got.Rate)
			assert.Equal(t, r.Probabilities.Of(tt.want), got.Probability)
		})
	}
}

func TestSelectDominantTieBreak(t *testing.T) {
	t.Parallel()

	rates := Rates{90, 110, 100}

	r := Result{Probabilities: Distribution{0.45, 0.45, 0.10}, Rates: rates}
	assert.Equal(t, market.Decrease, SelectDominant(r).Outcome)

	r = Result{Probabilities: Distribution{0.10, 0.45, 0.45}, Rates: rates}
	assert.Equal(t, market.Increase, SelectDominant(r).Outcome)

	r = Result{Probabilities: Distribution{1 / 3.0, 1 / 3.0, 1 / 3.0}, Rates: rates}
	assert.Equal(t, market.Decrease, SelectDominant(r).Outcome)
}

func TestSelectDominantIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewEngine(DefaultBounds(), NewSeededRand(11)).ForecastDays(60, 1353)
	before := r

	first := SelectDominant(r)
	second := SelectDominant(r)
	assert.Equal(t, first, second)
	assert.Equal(t, before, r)
}

func TestBuildConversionTable(t *testing.T) {
	t.Parallel()

	r := Result{
		Days:          90,
		Bucket:        Medium,
		CurrentRate:   1353,
		Probabilities: DistributionFor(Medium),
		Rates:         Rates{1300, 1400, 1355},
	}

	rows := BuildConversionTable(r, 1_000_000, 1353)
	require.Len(t, rows, 3)

	assert.Equal(t, market.Decrease, rows[0].Outcome)
	assert.Equal(t, 55.0, rows[0].ProbabilityPct)
	assert.InDelta(t, 1_300_000_000, rows[0].PredictedValue, 1e-3)
	assert.InDelta(t, -53_000_000, rows[0].Delta, 1e-3)

	assert.Equal(t, market.Increase, rows[1].Outcome)
	assert.Equal(t, 35.0, rows[1].ProbabilityPct)
	assert.InDelta(t, 47_000_000, rows[1].Delta, 1e-3)

	assert.Equal(t, market.Stable, rows[2].Outcome)
	assert.Equal(t, 10.0, rows[2].ProbabilityPct)
	assert.InDelta(t, 2_000_000, rows[2].Delta, 1e-3)
}

func TestBuildConversionTableOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dist Distribution
		want []market.Outcome
	}{
		{"short", DistributionFor(Short), []market.Outcome{market.Increase, market.Decrease, market.Stable}},
		{"expired ties keep canonical order", DistributionFor(Expired), []market.Outcome{market.Stable, market.Decrease, market.Increase}},
		{"all equal", Distribution{0.2, 0.2, 0.2}, []market.Outcome{market.Decrease, market.Increase, market.Stable}},
		{"stable ties increase", Distribution{0.2, 0.4, 0.4}, []market.Outcome{market.Increase, market.Stable, market.Decrease}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildConversionTable(Result{Probabilities: tt.dist, Rates: Rates{1, 2, 3}}, 10, 2)
			got := make([]market.Outcome, 0, len(rows))
			for i, row := range rows {
				got = append(got, row.Outcome)
				if i > 0 {
					assert.GreaterOrEqual(t, rows[i-1].Probability, row.Probability)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultJSON(t *testing.T) {
	t.Parallel()

	r := Result{Days: 3, Bucket: Short, CurrentRate: 10, Probabilities: DistributionFor(Short), Rates: Rates{9, 11, 10}}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "1-30", got["bucket"])
	assert.Equal(t, map[string]any{"decrease": 0.4, "increase": 0.5, "stable": 0.1}, got["probabilities"])
	assert.Equal(t, map[string]any{"decrease": 9.0, "increase": 11.0, "stable": 10.0}, got["predicted_rates"])
}
