package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/metrics"
)

// Date identifies a calendar day for historical lookups.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) Validate() error {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidRequest, d.Year, d.Month, d.Day)
	}
	return nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: bad date %q", ErrInvalidRequest, s)
	}
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// Request describes one conversion. Date selects the historical rate
// mode; when nil the latest rate is used.
type Request struct {
	From   string
	To     string
	Amount decimal.Decimal
	Date   *Date
}

// Normalize upper-cases the currency codes the way the provider
// expects them.
func (r Request) Normalize() Request {
	r.From = strings.ToUpper(strings.TrimSpace(r.From))
	r.To = strings.ToUpper(strings.TrimSpace(r.To))
	return r
}

func (r Request) Validate() error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("%w: source and target currency are required", ErrInvalidRequest)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidRequest)
	}
	if r.Date != nil {
		return r.Date.Validate()
	}
	return nil
}

// RateLookup is a successful provider answer for one currency pair.
type RateLookup struct {
	Rate decimal.Decimal
}

// Fetcher obtains a conversion rate for a request, live from a
// provider or otherwise.
type Fetcher interface {
	FetchRate(ctx context.Context, req Request) (RateLookup, error)
}

// ProviderConfig configures the exchangerate-api v6 client. All values
// are injected; the client reads no ambient state.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	// MaxRetries bounds transport-failure retries; the client makes at
	// most MaxRetries+1 requests per lookup.
	MaxRetries int
	// BaseDelay scales linearly with the attempt number between
	// retries.
	BaseDelay time.Duration
}

// ProviderClient fetches rates from an exchangerate-api.com v6 style
// endpoint:
//
//	GET {base}/{key}/latest/{FROM}                      -> conversion_rates
//	GET {base}/{key}/history/{FROM}/{Y}/{M}/{D}/{AMT}   -> conversion_amounts
//
// Transport failures are retried with a linear backoff; failures the
// provider itself reports are terminal, retrying them cannot change
// the answer.
type ProviderClient struct {
	cfg    ProviderConfig
	client *http.Client
	logger zerolog.Logger
}

func NewProviderClient(cfg ProviderConfig, client *http.Client, logger zerolog.Logger) *ProviderClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	return &ProviderClient{cfg: cfg, client: client, logger: logger}
}

type providerResponse struct {
	Result            string             `json:"result"`
	BaseCode          string             `json:"base_code"`
	ConversionRates   map[string]float64 `json:"conversion_rates"`
	ConversionAmounts map[string]float64 `json:"conversion_amounts"`
	ErrorType         string             `json:"error-type"`
}

func (c *ProviderClient) FetchRate(ctx context.Context, req Request) (RateLookup, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return RateLookup{}, err
	}

	url := c.lookupURL(req)

	var lastErr error
	for attempt := 1; ; attempt++ {
		lookup, err := c.doFetch(ctx, url, req)
		if err == nil {
			return lookup, nil
		}
		if KindOf(err) != KindUnknown {
			// Application-level failure, terminal.
			return RateLookup{}, err
		}
		lastErr = err

		if attempt > c.cfg.MaxRetries {
			return RateLookup{}, &Error{
				Kind:     KindNetworkError,
				From:     req.From,
				To:       req.To,
				Attempts: attempt,
				Err:      lastErr,
			}
		}

		delay := c.cfg.BaseDelay * time.Duration(attempt)
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Str("from", req.From).
			Msg("rate fetch failed, retrying")

		select {
		case <-ctx.Done():
			return RateLookup{}, &Error{
				Kind:     KindNetworkError,
				From:     req.From,
				To:       req.To,
				Attempts: attempt,
				Err:      ctx.Err(),
			}
		case <-time.After(delay):
		}
	}
}

func (c *ProviderClient) lookupURL(req Request) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if req.Date == nil {
		return fmt.Sprintf("%s/%s/latest/%s", base, c.cfg.APIKey, req.From)
	}
	amount := req.Amount
	if amount.IsZero() {
		// The history endpoint embeds the amount in the path; a unit
		// amount makes the returned value the rate itself.
		amount = decimal.NewFromInt(1)
	}
	return fmt.Sprintf("%s/%s/history/%s/%d/%d/%d/%s",
		base, c.cfg.APIKey, req.From, req.Date.Year, req.Date.Month, req.Date.Day, amount.String())
}

func (c *ProviderClient) doFetch(ctx context.Context, url string, req Request) (RateLookup, error) {
	mode := "latest"
	if req.Date != nil {
		mode = "history"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RateLookup{}, fmt.Errorf("build provider request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.ProviderRequestDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err != nil {
		return RateLookup{}, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RateLookup{}, fmt.Errorf("read provider response: %w", err)
	}

	var pr providerResponse
	if len(body) == 0 || json.Unmarshal(body, &pr) != nil {
		return RateLookup{}, &Error{
			Kind: KindParseError,
			From: req.From,
			To:   req.To,
			Err:  fmt.Errorf("status %d, %d byte body", resp.StatusCode, len(body)),
		}
	}

	if pr.Result != "success" {
		code := pr.ErrorType
		if code == "" {
			code = fmt.Sprintf("http_%d", resp.StatusCode)
		}
		return RateLookup{}, &Error{
			Kind:         KindProviderError,
			From:         req.From,
			To:           req.To,
			ProviderCode: code,
		}
	}

	return c.extractRate(pr, req)
}

func (c *ProviderClient) extractRate(pr providerResponse, req Request) (RateLookup, error) {
	if req.Date == nil {
		rate, ok := pr.ConversionRates[req.To]
		if !ok {
			return RateLookup{}, &Error{Kind: KindCurrencyNotFound, From: req.From, To: req.To}
		}
		return RateLookup{Rate: decimal.NewFromFloat(rate)}, nil
	}

	// History mode returns already-converted amounts for the amount
	// embedded in the URL; divide back out to recover the rate.
	converted, ok := pr.ConversionAmounts[req.To]
	if !ok {
		return RateLookup{}, &Error{Kind: KindCurrencyNotFound, From: req.From, To: req.To}
	}
	if req.Amount.IsZero() {
		return RateLookup{Rate: decimal.NewFromFloat(converted)}, nil
	}
	return RateLookup{Rate: decimal.NewFromFloat(converted).Div(req.Amount)}, nil
}
