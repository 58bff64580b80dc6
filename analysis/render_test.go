package analysis

import (
	"bytes"
	"context"
	"testing"

	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEnglish(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	r, err := a.Analyze(context.Background(), trade(market.Export, 90))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, nil))
	out := buf.String()

	assert.Contains(t, out, "== FX risk analysis ==")
	assert.Contains(t, out, "Trade type: Export")
	assert.Contains(t, out, "Trade amount: 1,000,000 USD")
	assert.Contains(t, out, "Current rate (USD/KRW): 1,353")
	assert.Contains(t, out, "Decrease: 55.0%  <")
	assert.Contains(t, out, "Main expectation: Decrease expected (probability 55.0%)")
	assert.Contains(t, out, "Sell forward contract (hedge downside)")
	assert.Contains(t, out, "Current value: 1,000,000 USD = 1,353,000,000 KRW")
	assert.Contains(t, out, "Change vs now")
	assert.Contains(t, out, "Disclaimer")
}

func TestRenderKorean(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t)
	r, err := a.Analyze(context.Background(), trade(market.Import, 10))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, locale.Korean))
	out := buf.String()

	assert.Contains(t, out, "환리스크 분석 결과")
	assert.Contains(t, out, "거래 유형: 수입")
	assert.Contains(t, out, "환율 상승 예상 (확률 50.0%)")
	assert.Contains(t, out, "선물환 매수 (환율 상승 위험 헷지)")
}

func TestRenderKoreanExposureCaptions(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(t, WithPolicy(risk.Policy{Currency: "USD", MaxWorstLossPct: 0.5, MaxExpectedLossPct: 0.5}))
	r, err := a.Analyze(context.Background(), trade(market.Export, 90))
	require.NoError(t, err)
	require.NotNil(t, r.Limits)
	require.True(t, r.Limits.WithinLimits)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, locale.Korean))
	out := buf.String()

	assert.Contains(t, out, "미헷지 노출")
	assert.Contains(t, out, "  기대 손익: ")
	assert.Contains(t, out, "  최악 (하락): ")
	assert.Contains(t, out, "  최선 (")
	assert.Contains(t, out, "최대 손실 ")
	assert.Contains(t, out, ", 한도 이내")
	for _, word := range []string{"expected:", "worst", "best", "within limits"} {
		assert.NotContains(t, out, word)
	}
}

func TestRenderUnknownInstrument(t *testing.T) {
	t.Parallel()

	r := &Report{Instrument: "EUR_GBP"}
	assert.Error(t, Render(&bytes.Buffer{}, r, locale.English))
}

func TestMoneyFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,353,000,000", money(1_353_000_000))
	assert.Equal(t, "0", money(-0.2))
	assert.Equal(t, "+47,000", signed(46_999.6))
	assert.Equal(t, "-53,000", signed(-53_000))
	assert.Equal(t, "0", signed(0.3))
}
