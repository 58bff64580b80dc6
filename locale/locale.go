// Package locale renders outcomes, directions and strategies for people.
// The engine works on enums only; everything a person reads comes from here.
package locale

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/strategy"
)

type Locale struct {
	Code       string
	outcomes   [market.NumOutcomes]string
	directions map[market.Direction]string
	strategies map[strategy.Strategy]string
	trend      string // format taking the outcome name and a percentage
	rationale  func(s strategy.Strategy, d market.Direction) string
	headings   Headings
	Disclaimer string
	DateLayout string
}

// Headings are the fixed captions of the text report.
type Headings struct {
	Result       string
	Direction    string
	Currency     string
	Amount       string
	StartDate    string
	Completion   string
	CurrentRate  string
	Probability  string
	Dominant     string
	DominantRate string
	Strategy     string
	Scenarios    string
	CurrentValue string
	Exposure     string
	ExpectedPL   string
	WorstCase    string
	BestCase     string
	WorstLoss    string
	WithinLimits string

	Scenario       string
	ProbabilityPct string
	PredictedRate  string
	PredictedValue string
	Delta          string
}

var English = &Locale{
	Code:     "en",
	outcomes: [market.NumOutcomes]string{"Decrease", "Increase", "Stable"},
	directions: map[market.Direction]string{
		market.Export: "Export",
		market.Import: "Import",
	},
	strategies: map[strategy.Strategy]string{},
	trend:      "%s expected (probability %.1f%%)",
	rationale:  strategy.Rationale,
	headings: Headings{
		Result:         "FX risk analysis",
		Direction:      "Trade type",
		Currency:       "Trade currency",
		Amount:         "Trade amount",
		StartDate:      "Start date",
		Completion:     "Completion date (forecast point)",
		CurrentRate:    "Current rate",
		Probability:    "Rate movement probabilities",
		Dominant:       "Main expectation",
		DominantRate:   "Expected rate",
		Strategy:       "Recommended strategy",
		Scenarios:      "Expected effect by scenario",
		CurrentValue:   "Current value",
		Exposure:       "Unhedged exposure",
		ExpectedPL:     "expected",
		WorstCase:      "worst",
		BestCase:       "best",
		WorstLoss:      "worst loss",
		WithinLimits:   "within limits",
		Scenario:       "Scenario",
		ProbabilityPct: "Probability (%)",
		PredictedRate:  "Expected rate",
		PredictedValue: "Expected value",
		Delta:          "Change vs now",
	},
	Disclaimer: "Disclaimer: this is a probabilistic outlook based on a simple model and may differ " +
		"from actual market conditions. It is for reference only; make investment decisions carefully.",
	DateLayout: "2006-01-02",
}

var Korean = &Locale{
	Code:       "ko",
	outcomes:   [market.NumOutcomes]string{"하락", "상승", "보합"},
	directions: koreanDirections,
	strategies: map[strategy.Strategy]string{
		strategy.None:        "전략 없음",
		strategy.SellForward: "선물환 매도 (환율 하락 위험 헷지)",
		strategy.HoldSpot:    "현물환 보유 후 환율 상승 시 매도 (상승 이익 추구)",
		strategy.BuyForward:  "선물환 매수 (환율 상승 위험 헷지)",
		strategy.BuySpot:     "현물환 매수 후 환율 하락 시 재매수 고려 (하락 이익 추구)",
		strategy.Monitor:     "상황 주시 및 유동적 대응",
	},
	trend:     "환율 %s 예상 (확률 %.1f%%)",
	rationale: koreanRationale,
	headings: Headings{
		Result:         "환리스크 분석 결과",
		Direction:      "거래 유형",
		Currency:       "거래 통화",
		Amount:         "거래 금액",
		StartDate:      "거래 시작일",
		Completion:     "거래 완료일 (예측 시점)",
		CurrentRate:    "현재 환율",
		Probability:    "환율 변동 확률",
		Dominant:       "주요 예상",
		DominantRate:   "예상 환율",
		Strategy:       "추천 전략",
		Scenarios:      "시나리오별 예상 효과",
		CurrentValue:   "현재 환산 금액",
		Exposure:       "미헷지 노출",
		ExpectedPL:     "기대 손익",
		WorstCase:      "최악",
		BestCase:       "최선",
		WorstLoss:      "최대 손실",
		WithinLimits:   "한도 이내",
		Scenario:       "시나리오",
		ProbabilityPct: "확률 (%)",
		PredictedRate:  "예상 환율",
		PredictedValue: "예상 환산 금액",
		Delta:          "현재 대비 변동",
	},
	Disclaimer: "면책 조항: 이 솔루션은 확률적 예측이며, 실제 시장 상황과 다를 수 있습니다. " +
		"제시된 정보는 참고용이며, 투자 결정은 항상 신중하게 내리셔야 합니다.",
	DateLayout: "2006년 01월 02일",
}

// Parse returns the locale for a language code such as "en" or "ko-KR".
func Parse(code string) (*Locale, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(c, "-_"); i > 0 {
		c = c[:i]
	}
	switch c {
	case "", "en":
		return English, nil
	case "ko", "kr":
		return Korean, nil
	default:
		return nil, fmt.Errorf("unsupported locale %q (want en|ko)", code)
	}
}

func (l *Locale) Outcome(o market.Outcome) string {
	if !o.Valid() {
		return o.String()
	}
	return l.outcomes[o]
}

func (l *Locale) Direction(d market.Direction) string {
	if s, ok := l.directions[d]; ok {
		return s
	}
	return d.String()
}

// Strategy falls back to the English label when the locale has none.
func (l *Locale) Strategy(s strategy.Strategy) string {
	if v, ok := l.strategies[s]; ok {
		return v
	}
	return s.String()
}

// Trend formats the dominant-outcome label, e.g.
// "Decrease expected (probability 55.0%)".
func (l *Locale) Trend(o market.Outcome, probability float64) string {
	return fmt.Sprintf(l.trend, l.Outcome(o), probability*100)
}

func (l *Locale) Headings() Headings {
	return l.headings
}

// Rationale explains the recommendation in the locale's language.
func (l *Locale) Rationale(s strategy.Strategy, d market.Direction) string {
	if l.rationale == nil {
		return strategy.Rationale(s, d)
	}
	return l.rationale(s, d)
}

var koreanDirections = map[market.Direction]string{
	market.Export: "수출",
	market.Import: "수입",
}

func koreanRationale(s strategy.Strategy, d market.Direction) string {
	dir, ok := koreanDirections[d]
	if !ok {
		dir = d.String()
	}
	switch s {
	case strategy.SellForward:
		return fmt.Sprintf("주요 예상은 환율 하락입니다. %s 기업의 경우, 미래에 받을 외화 금액의 원화 가치 "+
			"하락 위험을 헷지하기 위해 선물환 매도를 고려하는 것이 유리합니다.", dir)
	case strategy.BuyForward:
		return fmt.Sprintf("주요 예상은 환율 상승입니다. %s 기업의 경우, 미래에 지급할 외화 금액의 원화 부담 "+
			"증가 위험을 헷지하기 위해 선물환 매수를 고려하는 것이 유리합니다.", dir)
	case strategy.HoldSpot:
		return "주요 예상은 환율 상승입니다. 외화를 보유한 뒤 상승 시 매도하면 상승 이익을 추구할 수 있으나 위험에 계속 노출됩니다."
	case strategy.BuySpot:
		return "주요 예상은 환율 하락입니다. 지금 현물환을 매수하고 하락 시 재매수를 고려하면 하락 이익을 추구할 수 있으나 위험에 계속 노출됩니다."
	case strategy.Monitor:
		return "주요 예상은 환율 보합입니다. 시장 상황을 면밀히 주시하며 유동적으로 대응하는 것을 추천합니다."
	default:
		return "이 거래에 대한 추천 전략이 없습니다."
	}
}
