package locale

import (
	"testing"

	"github.com/rustyeddy/hedger/forecast"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    string
		want    *Locale
		wantErr bool
	}{
		{"", English, false},
		{"en", English, false},
		{"en-US", English, false},
		{"ko", Korean, false},
		{"ko_KR", Korean, false},
		{"fr", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Parse(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestEnglishTrendMatchesEngineLabel(t *testing.T) {
	t.Parallel()

	for _, o := range market.Outcomes {
		assert.Equal(t, forecast.TrendLabel(o, 0.55), English.Trend(o, 0.55))
	}
}

func TestKoreanLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "하락", Korean.Outcome(market.Decrease))
	assert.Equal(t, "상승", Korean.Outcome(market.Increase))
	assert.Equal(t, "보합", Korean.Outcome(market.Stable))
	assert.Equal(t, "수출", Korean.Direction(market.Export))
	assert.Equal(t, "환율 하락 예상 (확률 55.0%)", Korean.Trend(market.Decrease, 0.55))
	assert.Equal(t, "선물환 매도 (환율 하락 위험 헷지)", Korean.Strategy(strategy.SellForward))
	assert.Equal(t, "전략 없음", Korean.Strategy(strategy.None))
}

func TestEnglishStrategyFallsBack(t *testing.T) {
	t.Parallel()

	for _, s := range []strategy.Strategy{strategy.None, strategy.SellForward, strategy.Monitor} {
		assert.Equal(t, s.String(), English.Strategy(s))
	}
}

func TestInvalidValuesDoNotPanic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Outcome(9)", Korean.Outcome(market.Outcome(9)))
	assert.Equal(t, "Direction(4)", English.Direction(market.Direction(4)))
}

func TestRationale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, strategy.Rationale(strategy.SellForward, market.Export), English.Rationale(strategy.SellForward, market.Export))
	assert.Contains(t, Korean.Rationale(strategy.SellForward, market.Export), "수출 기업")
	assert.Contains(t, Korean.Rationale(strategy.BuyForward, market.Import), "선물환 매수")
	assert.Contains(t, Korean.Rationale(strategy.None, market.Import), "추천 전략이 없습니다")
}
