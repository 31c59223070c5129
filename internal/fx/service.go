package fx

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/project-budget-service/internal/metrics"
)

// Result is the outcome of a conversion. ConvertedAmount is always
// Amount × Rate.
type Result struct {
	From            string
	To              string
	Amount          decimal.Decimal
	Rate            decimal.Decimal
	ConvertedAmount decimal.Decimal
	UsedFallback    bool
}

// Options tune the conversion service.
type Options struct {
	// PreferFallback consults the static table before the live
	// provider. Default false: a live rate, even a stale historical
	// one, wins over a hardcoded approximation.
	PreferFallback bool
	// TotalTimeout bounds one conversion end to end, covering all
	// retries and backoff sleeps. Zero disables the bound.
	TotalTimeout time.Duration
}

// Service orchestrates fetch-then-fallback. Stateless between calls
// and safe for concurrent use.
type Service struct {
	fetcher  Fetcher
	fallback *FallbackTable
	opts     Options
	logger   zerolog.Logger
}

func NewService(fetcher Fetcher, fallback *FallbackTable, opts Options, logger zerolog.Logger) *Service {
	if fallback == nil {
		fallback = DefaultFallbackTable()
	}
	return &Service{fetcher: fetcher, fallback: fallback, opts: opts, logger: logger}
}

// Convert resolves a rate for req and computes the converted amount.
// On live-path failure of any kind the fallback table is consulted
// once; a miss there surfaces the original classified error unchanged.
func (s *Service) Convert(ctx context.Context, req Request) (Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	if s.opts.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TotalTimeout)
		defer cancel()
	}

	if s.opts.PreferFallback {
		if res, ok := s.resolveFallback(req); ok {
			metrics.ConversionsTotal.WithLabelValues("fallback").Inc()
			return res, nil
		}
	}

	lookup, err := s.fetcher.FetchRate(ctx, req)
	if err == nil {
		metrics.ConversionsTotal.WithLabelValues("live").Inc()
		return s.result(req, lookup.Rate, false), nil
	}

	if !s.opts.PreferFallback {
		if res, ok := s.resolveFallback(req); ok {
			s.logger.Warn().
				Err(err).
				Str("from", req.From).
				Str("to", req.To).
				Msg("live rate unavailable, using fallback rate")
			metrics.ConversionsTotal.WithLabelValues("fallback").Inc()
			return res, nil
		}
	}

	metrics.ConversionsTotal.WithLabelValues("error").Inc()
	return Result{}, err
}

func (s *Service) resolveFallback(req Request) (Result, bool) {
	rate, ok := s.fallback.Resolve(req.From, req.To)
	if !ok {
		return Result{}, false
	}
	metrics.FallbackUsesTotal.WithLabelValues(req.From + "/" + req.To).Inc()
	return s.result(req, rate, true), true
}

func (s *Service) result(req Request, rate decimal.Decimal, usedFallback bool) Result {
	return Result{
		From:            req.From,
		To:              req.To,
		Amount:          req.Amount,
		Rate:            rate,
		ConvertedAmount: req.Amount.Mul(rate),
		UsedFallback:    usedFallback,
	}
}
