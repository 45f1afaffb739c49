package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Quote is a best-effort price snapshot for one ticker, derived from the last
// two daily closes.
type Quote struct {
	Price     float64
	Change    float64
	ChangePct float64
}

// maxQuoteFetches bounds the fan-out against the quote endpoint.
const maxQuoteFetches = 4

// Quotes fetches snapshots for the given tickers concurrently. A failed
// ticker never aborts the batch: it is logged as a warning and omitted from
// the result.
func (c *Client) Quotes(ctx context.Context, tickers []string) map[string]Quote {
	out := make(map[string]Quote, len(tickers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxQuoteFetches)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			q, err := c.fetchQuote(gctx, ticker)
			if err != nil {
				slog.Warn("could not fetch quote", "ticker", ticker, "error", err)
				return nil // partial failure, keep going
			}
			mu.Lock()
			out[ticker] = q
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// chartResponse mirrors the relevant slice of the Yahoo v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) fetchQuote(ctx context.Context, ticker string) (Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=2d&interval=1d", c.quotesBaseURL, ticker)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, &GatewayError{Op: "quote " + ticker, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, &GatewayError{Op: "quote " + ticker, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, &GatewayError{
			Op:  "quote " + ticker,
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, &GatewayError{Op: "quote " + ticker, Err: err}
	}
	if body.Chart.Error != nil {
		return Quote{}, &GatewayError{
			Op:  "quote " + ticker,
			Err: fmt.Errorf("%s", body.Chart.Error.Description),
		}
	}

	closes := closesFrom(body)
	if len(closes) < 2 {
		return Quote{}, &GatewayError{
			Op:  "quote " + ticker,
			Err: fmt.Errorf("need two closes, got %d", len(closes)),
		}
	}

	current := closes[len(closes)-1]
	previous := closes[len(closes)-2]
	change := current - previous

	return Quote{
		Price:     round2(current),
		Change:    round2(change),
		ChangePct: round2(change / previous * 100),
	}, nil
}

func closesFrom(body chartResponse) []float64 {
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil
	}
	var closes []float64
	for _, v := range body.Chart.Result[0].Indicators.Quote[0].Close {
		if v > 0 {
			closes = append(closes, v)
		}
	}
	return closes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
