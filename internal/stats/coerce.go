package stats

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coerce converts a persisted stat value into a non-negative counter.
// Anything that is not a finite, non-negative number (or a string holding one)
// becomes 0; fractions truncate toward zero. It never fails: a stats mapping
// loaded from a damaged or hand-edited backup must stay usable.
func Coerce(v any) int {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0
		}
		f = n
	case []byte:
		return Coerce(string(x))
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= MaxCount {
		return MaxCount
	}
	return int(f)
}
