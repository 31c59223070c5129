package fx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type pairKey struct {
	from string
	to   string
}

// FallbackTable is a read-only set of static rates consulted when the
// live provider path fails. Lookups are pair-exact: an inverse rate is
// only available when listed itself. Built once at startup, never
// mutated afterwards, so it is safe for concurrent reads.
type FallbackTable struct {
	rates map[pairKey]decimal.Decimal
}

// NewFallbackTable builds a table from entries keyed "FROM/TO". Every
// rate must be positive.
func NewFallbackTable(entries map[string]string) (*FallbackTable, error) {
	rates := make(map[pairKey]decimal.Decimal, len(entries))
	for key, value := range entries {
		from, to, ok := strings.Cut(key, "/")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("fallback entry %q: want FROM/TO", key)
		}
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("fallback entry %q: %w", key, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("fallback entry %q: rate must be positive, got %s", key, rate)
		}
		rates[pairKey{from: strings.ToUpper(from), to: strings.ToUpper(to)}] = rate
	}
	return &FallbackTable{rates: rates}, nil
}

// defaultFallbackRates covers the pairs the service is most often asked
// for. Approximate by design; they trade accuracy for availability.
var defaultFallbackRates = map[string]string{
	"USD/TTD": "6.75",
	"TTD/USD": "0.1481",
	"USD/EUR": "0.92",
	"EUR/USD": "1.0870",
	"USD/GBP": "0.79",
	"GBP/USD": "1.2658",
}

// DefaultFallbackTable returns the built-in rate table.
func DefaultFallbackTable() *FallbackTable {
	t, err := NewFallbackTable(defaultFallbackRates)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve looks up the exact (from, to) pair.
func (t *FallbackTable) Resolve(from, to string) (decimal.Decimal, bool) {
	rate, ok := t.rates[pairKey{
		from: strings.ToUpper(strings.TrimSpace(from)),
		to:   strings.ToUpper(strings.TrimSpace(to)),
	}]
	return rate, ok
}

// Len reports the number of listed pairs.
func (t *FallbackTable) Len() int {
	return len(t.rates)
}
