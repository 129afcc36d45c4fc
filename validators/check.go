// Package validators holds the ordered precondition checks run before any
// reservation or table mutation. Each check is a pure predicate; Run stops at
// the first rejection.
package validators

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/utils"
)

const missingData = "body must have data property"

// Check rejects its input with a client error, or returns nil to accept it.
type Check[T any] func(T) *utils.AppError

// Run applies checks in order and returns the first rejection.
func Run[T any](in T, checks ...Check[T]) error {
	for _, check := range checks {
		if appErr := check(in); appErr != nil {
			return appErr
		}
	}
	return nil
}

// positiveInt accepts JSON numbers with an integral value of at least 1.
func positiveInt(v interface{}) (int, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// idValue accepts a positive integral number or a string of digits.
func idValue(v interface{}) (uint, bool) {
	if s, ok := v.(string); ok {
		id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	}
	n, ok := positiveInt(v)
	return uint(n), ok
}
