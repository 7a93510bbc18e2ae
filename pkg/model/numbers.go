package model // import "github.com/openscholar/contribution-processor/pkg/model"

// NOTE: JSONB payloads round-trip all numbers as float64, so FromMap
// conversions need to coerce numeric values back to their model types.

func numToInt(val interface{}) int {
	switch v := val.(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func numToInt64(val interface{}) int64 {
	switch v := val.(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
