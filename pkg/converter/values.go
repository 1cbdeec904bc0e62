package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyValue is returned when a numeric field holds only whitespace
var ErrEmptyValue = errors.New("empty string")

var installReplacer = strings.NewReplacer(",", "", "+", "")

// ParseFloat converts a numeric field to float64
// NaN is rejected since it never compares equal to itself
func ParseFloat(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, ErrEmptyValue
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("cannot use '%s' as a number", value)
	}
	return f, nil
}

// ParseInstalls converts an install bucket such as "100,000+" to its lower
// bound by dropping thousands separators and the "+" suffix
func ParseInstalls(value string) (float64, error) {
	return ParseFloat(installReplacer.Replace(value))
}

// IsZeroPrice reports whether a price field denotes zero cost numerically,
// accepting "0", "0.0", "0.00" and a leading "$"
func IsZeroPrice(value string) bool {
	cleaned := strings.TrimPrefix(strings.TrimSpace(value), "$")
	f, err := ParseFloat(cleaned)
	if err != nil {
		return false
	}
	return f == 0
}
