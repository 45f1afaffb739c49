package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"findash/internal/market"
	"findash/internal/storage"
)

type Config struct {
	// Session
	Currency      string
	MonthlyBudget float64
	Tickers       []string

	// External data gateway
	RatesBaseURL  string
	QuotesBaseURL string
	FetchTimeout  time.Duration

	// Session storage
	SessionDSN string

	// Data source selection
	DataBackend string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export
	ExportDir string
}

// supportedCurrencies matches the fixed rate table the gateway degrades to.
var supportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY"}

func Load() *Config {
	cfg := &Config{
		Currency:      getEnv("CURRENCY", "USD"),
		MonthlyBudget: getEnvFloat("MONTHLY_BUDGET", 0),
		Tickers:       splitList(getEnv("TICKERS", "")),

		RatesBaseURL:  getEnv("RATES_BASE_URL", market.DefaultRatesBaseURL),
		QuotesBaseURL: getEnv("QUOTES_BASE_URL", market.DefaultQuotesBaseURL),
		FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", market.DefaultFetchTimeout),

		SessionDSN: getEnv("SESSION_DSN", storage.InMemoryDSN),

		DataBackend: getEnv("DATA_BACKEND", "memory"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "findash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transactions_ingested"),

		ExportDir: getEnv("EXPORT_DIR", "."),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validCurrency := false
	for _, code := range supportedCurrencies {
		if c.Currency == code {
			validCurrency = true
			break
		}
	}
	if !validCurrency {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be one of %v", c.Currency, supportedCurrencies))
	}

	if c.MonthlyBudget < 0 {
		errors = append(errors, fmt.Sprintf("invalid monthly budget %v: must not be negative", c.MonthlyBudget))
	}

	validBackends := []string{"memory", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.FetchTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at least 100ms", c.FetchTimeout))
	} else if c.FetchTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid fetch timeout %v: must be at most 1 minute", c.FetchTimeout))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
