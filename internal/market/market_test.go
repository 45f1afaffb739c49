package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExchangeRatesLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/latest/USD" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"USD":1.0,"EUR":0.91}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	rates, err := c.ExchangeRates(context.Background(), "USD")
	if err != nil {
		t.Fatalf("expected live rates, got %v", err)
	}
	if rates["EUR"] != 0.91 {
		t.Fatalf("EUR rate: got %v", rates["EUR"])
	}
}

func TestExchangeRatesFallback(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"empty table", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"rates":{}}`))
		}},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(tc.handler)
		c := NewClient(srv.URL, "", time.Second)

		rates, err := c.ExchangeRates(context.Background(), "USD")
		srv.Close()

		if err == nil {
			t.Fatalf("%s: expected degradation error", tc.name)
		}
		var gwErr *GatewayError
		if !errors.As(err, &gwErr) {
			t.Fatalf("%s: expected GatewayError, got %v", tc.name, err)
		}
		// Fallback must carry all eight fixed currencies.
		for code, want := range map[string]float64{
			"USD": 1.0, "EUR": 0.85, "GBP": 0.73, "JPY": 110.0,
			"CAD": 1.25, "AUD": 1.35, "CHF": 0.92, "CNY": 6.45,
		} {
			if rates[code] != want {
				t.Fatalf("%s: fallback %s=%v, want %v", tc.name, code, rates[code], want)
			}
		}
	}
}

func TestExchangeRatesUnreachableHost(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", 200*time.Millisecond)
	rates, err := c.ExchangeRates(context.Background(), "USD")
	if err == nil {
		t.Fatal("expected degradation error")
	}
	if rates["EUR"] != 0.85 {
		t.Fatalf("fallback EUR: got %v", rates["EUR"])
	}
}

func TestQuotesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v8/finance/chart/AAPL":
			_, _ = w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[100.0,110.0]}]}}]}}`))
		case "/v8/finance/chart/MSFT":
			w.WriteHeader(http.StatusNotFound)
		case "/v8/finance/chart/ONECLOSE":
			_, _ = w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[42.0]}]}}]}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, time.Second)
	quotes := c.Quotes(context.Background(), []string{"AAPL", "MSFT", "ONECLOSE"})

	if len(quotes) != 1 {
		t.Fatalf("expected only AAPL to survive, got %v", quotes)
	}
	q, ok := quotes["AAPL"]
	if !ok {
		t.Fatal("AAPL missing")
	}
	if q.Price != 110.0 || q.Change != 10.0 || q.ChangePct != 10.0 {
		t.Fatalf("AAPL quote: %+v", q)
	}
}

func TestQuotesSkipsNullCloses(t *testing.T) {
	// Zero closes (nulls in the feed) must not be used as price points.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"indicators":{"quote":[{"close":[0,200.0,0,220.0]}]}}]}}`))
	}))
	defer srv.Close()

	c := NewClient("", srv.URL, time.Second)
	quotes := c.Quotes(context.Background(), []string{"TSLA"})

	q := quotes["TSLA"]
	if q.Price != 220.0 || q.Change != 20.0 || q.ChangePct != 10.0 {
		t.Fatalf("TSLA quote: %+v", q)
	}
}

func TestFallbackRatesIsACopy(t *testing.T) {
	a := FallbackRates()
	a["USD"] = 99
	if b := FallbackRates(); b["USD"] != 1.0 {
		t.Fatal("fallback table must not be mutable through returned maps")
	}
}
