package fx

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks conversion requests rejected before any
// provider call. Handlers map it to a 400.
var ErrInvalidRequest = errors.New("invalid conversion request")

type Kind int

const (
	KindUnknown Kind = iota
	// KindCurrencyNotFound: provider answered, target currency missing
	// from the returned rate set.
	KindCurrencyNotFound
	// KindProviderError: provider reported a non-success result.
	KindProviderError
	// KindParseError: response body was empty or not the expected JSON.
	KindParseError
	// KindNetworkError: transport failure persisted through all retries.
	KindNetworkError
)

func (k Kind) String() string {
	switch k {
	case KindCurrencyNotFound:
		return "currency_not_found"
	case KindProviderError:
		return "provider_error"
	case KindParseError:
		return "parse_error"
	case KindNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Error is a classified conversion failure. Only transport failures
// (KindNetworkError) are ever the product of retries; the other kinds
// are terminal on first occurrence.
type Error struct {
	Kind Kind
	From string
	To   string

	// ProviderCode is the provider's error-type field, set for
	// KindProviderError.
	ProviderCode string
	// Attempts is the number of requests made, set for KindNetworkError.
	Attempts int

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCurrencyNotFound:
		return fmt.Sprintf("currency %s not present in %s rate set", e.To, e.From)
	case KindProviderError:
		return fmt.Sprintf("provider reported error %q for %s", e.ProviderCode, e.From)
	case KindParseError:
		return fmt.Sprintf("malformed provider response for %s: %v", e.From, e.Err)
	case KindNetworkError:
		return fmt.Sprintf("provider unreachable after %d attempts: %v", e.Attempts, e.Err)
	default:
		return fmt.Sprintf("conversion %s->%s failed: %v", e.From, e.To, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, or KindUnknown when err
// is not a classified conversion error.
func KindOf(err error) Kind {
	var fxErr *Error
	if errors.As(err, &fxErr) {
		return fxErr.Kind
	}
	return KindUnknown
}
