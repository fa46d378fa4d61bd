package pool

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrUnsupportedScheme indicates a "://" was present but the URL does not
	// start with stratum+tcp://.
	ErrUnsupportedScheme = errors.New("unsupported scheme")

	// ErrEmptyHost indicates nothing, or a path, follows the scheme.
	ErrEmptyHost = errors.New("empty or path-like host")

	// ErrUnterminatedBracket indicates an IPv6 literal without a closing ']'.
	ErrUnterminatedBracket = errors.New("unterminated IPv6 bracket")

	// ErrMissingPort indicates a bracketed IPv6 literal without ":port".
	ErrMissingPort = errors.New("missing port after IPv6 literal")

	// ErrMissingSeparator indicates a credential string without ':'.
	ErrMissingSeparator = errors.New("missing ':' separator")

	// ErrInvalidVariant indicates a variant outside auto/0/1.
	ErrInvalidVariant = errors.New("invalid variant")

	// ErrAlgorithmDisabled indicates an algorithm not enabled in the table.
	ErrAlgorithmDisabled = errors.New("algorithm not enabled")

	// ErrUnknownAlgorithm indicates a name that no enabled algorithm matches.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnknownFeature indicates an unrecognized algorithm feature name.
	ErrUnknownFeature = errors.New("unknown algorithm feature")
)

// Text codes attached by ToServiceError.
const (
	ErrorUnsupportedScheme   = "POOL_UNSUPPORTED_SCHEME"
	ErrorEmptyHost           = "POOL_EMPTY_HOST"
	ErrorUnterminatedBracket = "POOL_UNTERMINATED_BRACKET"
	ErrorMissingPort         = "POOL_MISSING_PORT"
	ErrorMissingSeparator    = "POOL_MISSING_SEPARATOR"
	ErrorInvalidVariant      = "POOL_INVALID_VARIANT"
	ErrorAlgorithmDisabled   = "POOL_ALGORITHM_DISABLED"
	ErrorUnknownFeature      = "POOL_UNKNOWN_FEATURE"
	ErrorUnknownAlgorithm    = "POOL_UNKNOWN_ALGORITHM"
	ErrorInternal            = "POOL_INTERNAL"
)

// ParseError records which input a parse operation rejected.
type ParseError struct {
	Op    string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pool: %s %q: %v", e.Op, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errorCodes = []struct {
	err      error
	code     string
	category goerrors.Category
}{
	{ErrUnsupportedScheme, ErrorUnsupportedScheme, goerrors.CategoryBadInput},
	{ErrEmptyHost, ErrorEmptyHost, goerrors.CategoryBadInput},
	{ErrUnterminatedBracket, ErrorUnterminatedBracket, goerrors.CategoryBadInput},
	{ErrMissingPort, ErrorMissingPort, goerrors.CategoryBadInput},
	{ErrMissingSeparator, ErrorMissingSeparator, goerrors.CategoryBadInput},
	{ErrInvalidVariant, ErrorInvalidVariant, goerrors.CategoryValidation},
	{ErrAlgorithmDisabled, ErrorAlgorithmDisabled, goerrors.CategoryValidation},
	{ErrUnknownFeature, ErrorUnknownFeature, goerrors.CategoryValidation},
	{ErrUnknownAlgorithm, ErrorUnknownAlgorithm, goerrors.CategoryValidation},
}

// ToServiceError wraps err in a go-errors envelope with a stable text code
// so callers at a process boundary can report it uniformly.
func ToServiceError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}

	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return goerrors.Wrap(err, c.category, err.Error()).
				WithCode(http.StatusBadRequest).
				WithTextCode(c.code)
		}
	}

	return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}
