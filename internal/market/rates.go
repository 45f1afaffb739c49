// Package market talks to the two outbound data sources: the exchange-rate
// API and the quote endpoint. Failures on this boundary are never fatal for
// the pipeline; rates degrade to a static table and failed tickers are simply
// absent from the result.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultRatesBaseURL  = "https://api.exchangerate-api.com"
	DefaultQuotesBaseURL = "https://query1.finance.yahoo.com"
	DefaultFetchTimeout  = 3 * time.Second
)

// fallbackRates is the deterministic table used whenever the live fetch
// fails.
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.85,
	"GBP": 0.73,
	"JPY": 110.0,
	"CAD": 1.25,
	"AUD": 1.35,
	"CHF": 0.92,
	"CNY": 6.45,
}

// GatewayError describes a degraded external fetch. Callers log it as a
// warning and continue with fallback or partial data.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Client fetches exchange rates and security quotes.
type Client struct {
	httpClient    *http.Client
	ratesBaseURL  string
	quotesBaseURL string
	timeout       time.Duration
}

func NewClient(ratesBaseURL, quotesBaseURL string, timeout time.Duration) *Client {
	if ratesBaseURL == "" {
		ratesBaseURL = DefaultRatesBaseURL
	}
	if quotesBaseURL == "" {
		quotesBaseURL = DefaultQuotesBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		ratesBaseURL:  ratesBaseURL,
		quotesBaseURL: quotesBaseURL,
		timeout:       timeout,
	}
}

// FallbackRates returns a copy of the static rate table.
func FallbackRates() map[string]float64 {
	out := make(map[string]float64, len(fallbackRates))
	for k, v := range fallbackRates {
		out[k] = v
	}
	return out
}

// ExchangeRates fetches conversion factors relative to the base currency.
// The returned map is always usable: on any failure (transport, timeout,
// non-200, empty body) it is the fallback table and the error describes the
// degradation so the caller can log a warning.
func (c *Client) ExchangeRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/v4/latest/%s", c.ratesBaseURL, base)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FallbackRates(), &GatewayError{Op: "exchange rates", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FallbackRates(), &GatewayError{Op: "exchange rates", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackRates(), &GatewayError{
			Op:  "exchange rates",
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return FallbackRates(), &GatewayError{Op: "exchange rates", Err: err}
	}
	if len(body.Rates) == 0 {
		return FallbackRates(), &GatewayError{
			Op:  "exchange rates",
			Err: fmt.Errorf("empty rate table"),
		}
	}

	slog.Debug("fetched live exchange rates", "base", base, "count", len(body.Rates))
	return body.Rates, nil
}
