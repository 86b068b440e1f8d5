// Package money normalizes heterogeneous stored price representations
// (decimal strings, json numbers, plain floats) into a canonical amount.
// Monetary values reach us from several generations of stored documents,
// so every aggregation path must go through Normalize.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Normalize converts a stored price value into a float64 amount.
// Numeric strings parse to their decimal value, numeric types pass through.
// Anything that is not a finite, non-negative number fails with ErrInvalidAmount.
func Normalize(v any) (float64, error) {
	var amount float64
	switch t := v.(type) {
	case float64:
		amount = t
	case float32:
		amount = float64(t)
	case int:
		amount = float64(t)
	case int32:
		amount = float64(t)
	case int64:
		amount = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidAmount, "parse %q", t.String())
		}
		amount = f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, errors.Wrap(ErrInvalidAmount, "empty string")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidAmount, "parse %q", s)
		}
		amount = f
	default:
		return 0, errors.Wrapf(ErrInvalidAmount, "unsupported type %T", v)
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, errors.Wrapf(ErrInvalidAmount, "not a finite non-negative number: %v", amount)
	}
	return amount, nil
}

// ToCents converts a normalized amount to an integer cent value for the
// payment provider, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
