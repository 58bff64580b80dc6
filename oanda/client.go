package oanda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/hedger/pricing"
)

const (
	// PracticeURL is the URL for OANDA's practice/demo environment
	PracticeURL = "https://api-fxpractice.oanda.com"
	// LiveURL is the URL for OANDA's live trading environment
	LiveURL = "https://api-fxtrade.oanda.com"
)

// Client reads quotes from the OANDA v3 REST API. It implements
// pricing.TickSource.
type Client struct {
	baseURL    string
	token      string
	accountID  string
	httpClient *http.Client
}

// BaseURL maps an environment name onto the API host.
func BaseURL(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "practice", "demo":
		return PracticeURL, nil
	case "live":
		return LiveURL, nil
	default:
		return "", fmt.Errorf("unknown OANDA env %q (want practice|live)", env)
	}
}

// NewClient creates a new OANDA API client
func NewClient(baseURL, token, accountID string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		accountID: accountID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type priceBucket struct {
	Price string `json:"price"`
}

type apiPrice struct {
	Instrument string        `json:"instrument"`
	Time       string        `json:"time"`
	Bids       []priceBucket `json:"bids"`
	Asks       []priceBucket `json:"asks"`
}

type pricingResponse struct {
	Prices []apiPrice `json:"prices"`
}

// GetTick returns the top-of-book quote for instrument.
func (c *Client) GetTick(ctx context.Context, instrument string) (pricing.Tick, error) {
	if c.token == "" {
		return pricing.Tick{}, errors.New("oanda: missing token")
	}
	if c.accountID == "" {
		return pricing.Tick{}, errors.New("oanda: missing account id")
	}
	if instrument == "" {
		return pricing.Tick{}, errors.New("oanda: instrument is required")
	}

	path := fmt.Sprintf("/v3/accounts/%s/pricing", url.PathEscape(c.accountID))
	body, err := c.get(ctx, path, url.Values{"instruments": {instrument}})
	if err != nil {
		return pricing.Tick{}, err
	}
	defer body.Close()

	var resp pricingResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return pricing.Tick{}, fmt.Errorf("oanda: decode pricing: %w", err)
	}

	for _, p := range resp.Prices {
		if p.Instrument != instrument {
			continue
		}
		return toTick(p)
	}
	return pricing.Tick{}, fmt.Errorf("oanda: %w: %s", pricing.ErrNoPrice, instrument)
}

func toTick(p apiPrice) (pricing.Tick, error) {
	if len(p.Bids) == 0 || len(p.Asks) == 0 {
		return pricing.Tick{}, fmt.Errorf("oanda: %s has no bids or asks", p.Instrument)
	}
	bid, err := strconv.ParseFloat(p.Bids[0].Price, 64)
	if err != nil {
		return pricing.Tick{}, fmt.Errorf("oanda: parse bid: %w", err)
	}
	ask, err := strconv.ParseFloat(p.Asks[0].Price, 64)
	if err != nil {
		return pricing.Tick{}, fmt.Errorf("oanda: parse ask: %w", err)
	}

	ts := time.Now().UTC()
	if p.Time != "" {
		if t, err := time.Parse(time.RFC3339Nano, p.Time); err == nil {
			ts = t
		}
	}

	return pricing.Tick{Instrument: p.Instrument, Time: ts, Bid: bid, Ask: ask}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (io.ReadCloser, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept-Datetime-Format", "RFC3339")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, fmt.Errorf("oanda pricing http %d: %s", resp.StatusCode, trimForErr(strings.TrimSpace(string(b))))
	}
	return resp.Body, nil
}

func trimForErr(s string) string {
	const n = 200
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
