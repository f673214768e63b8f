// Package currency provides exchange-rate lookup with caching and conversion
// between ISO 4217 currencies. Amounts are converted at the cents level using
// decimal arithmetic; presentation-time formatting lives elsewhere.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCacheTTL is how long a fetched rate table is considered fresh.
const DefaultCacheTTL = 12 * time.Hour

// RateSource fetches a quote table for a base currency.
type RateSource interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// HTTPRateSource fetches rates from an exchangerate-API style JSON endpoint:
// GET {baseURL}/{BASE} -> {"base_code": "USD", "rates": {"EUR": 0.91, ...}}.
type HTTPRateSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRateSource creates a rate source against the given endpoint,
// e.g. "https://open.er-api.com/v6/latest".
func NewHTTPRateSource(baseURL string) *HTTPRateSource {
	return &HTTPRateSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPRateSource) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", s.BaseURL, strings.ToUpper(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("rate API returned no rates for %s", base)
	}
	return body.Rates, nil
}

// fallbackUSDRates is a static last-resort table (units per 1 USD) used when
// the rate source is unreachable and nothing is cached. Values are
// approximate; conversions served from this table are logged.
var fallbackUSDRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 148.0,
	"AUD": 1.52,
	"CAD": 1.36,
	"CHF": 0.88,
	"CNY": 7.2,
	"INR": 83.0,
	"NZD": 1.64,
	"SEK": 10.4,
	"NOK": 10.6,
	"SGD": 1.34,
	"HKD": 7.8,
	"TWD": 31.5,
	"KRW": 1330.0,
	"BRL": 5.0,
	"MXN": 17.0,
}

type cachedRates struct {
	rates     map[string]float64
	fetchedAt time.Time
}

// Converter converts amounts between currencies using a cached rate source.
//
// Lookup policy: a fresh cache entry is used as-is; an expired entry triggers
// a refetch; if the refetch fails, the stale entry is reused in preference to
// the static fallback table.
type Converter struct {
	mu     sync.RWMutex
	source RateSource
	ttl    time.Duration
	cache  map[string]cachedRates

	now func() time.Time // test hook
}

// NewConverter creates a converter over the given source. A zero ttl uses
// DefaultCacheTTL.
func NewConverter(source RateSource, ttl time.Duration) *Converter {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Converter{
		source: source,
		ttl:    ttl,
		cache:  make(map[string]cachedRates),
		now:    time.Now,
	}
}

// Rate returns the multiplier converting one unit of from into to.
func (c *Converter) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates, err := c.ratesFor(ctx, from)
	if err != nil {
		return decimal.Zero, err
	}

	quote, ok := rates[to]
	if !ok || quote <= 0 {
		return decimal.Zero, fmt.Errorf("no rate from %s to %s", from, to)
	}
	return decimal.NewFromFloat(quote), nil
}

// ConvertCents converts an amount in minor units, rounding half-up to the
// nearest cent.
func (c *Converter) ConvertCents(ctx context.Context, amountCents int64, from, to string) (int64, error) {
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return 0, err
	}
	converted := decimal.NewFromInt(amountCents).Mul(rate).Round(0)
	return converted.IntPart(), nil
}

// ratesFor returns the quote table for base, consulting cache, source, stale
// cache, and the static fallback in that order.
func (c *Converter) ratesFor(ctx context.Context, base string) (map[string]float64, error) {
	now := c.now()

	c.mu.RLock()
	entry, cached := c.cache[base]
	c.mu.RUnlock()

	if cached && now.Sub(entry.fetchedAt) < c.ttl {
		return entry.rates, nil
	}

	rates, err := c.source.FetchRates(ctx, base)
	if err == nil {
		c.mu.Lock()
		c.cache[base] = cachedRates{rates: rates, fetchedAt: now}
		c.mu.Unlock()
		return rates, nil
	}

	if cached {
		log.Printf("[Currency] rate fetch for %s failed, serving stale cache from %s: %v",
			base, entry.fetchedAt.Format(time.RFC3339), err)
		return entry.rates, nil
	}

	if fallback, ok := crossFromUSD(base); ok {
		log.Printf("[Currency] rate fetch for %s failed with no cache, serving static fallback: %v", base, err)
		return fallback, nil
	}

	return nil, fmt.Errorf("fetch rates for %s: %w", base, err)
}

// crossFromUSD derives a quote table for base out of the static USD table.
func crossFromUSD(base string) (map[string]float64, bool) {
	baseRate, ok := fallbackUSDRates[base]
	if !ok || baseRate <= 0 {
		return nil, false
	}
	rates := make(map[string]float64, len(fallbackUSDRates))
	for code, usdRate := range fallbackUSDRates {
		rates[code] = usdRate / baseRate
	}
	return rates, true
}
