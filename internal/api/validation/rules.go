package validation

import (
	"math"
	"strconv"
	"strings"
)

func asString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func notBlank(value any) bool {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case float64, int, int64, bool:
		return true
	}
	return false
}

// latLong accepts a "latitude,longitude" pair string; each half is checked
// with the validator's latitude/longitude tags.
func (fv *Validator) latLong(value any) bool {
	s, ok := asString(value)
	if !ok {
		return false
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return false
	}
	lat := strings.TrimSpace(parts[0])
	lng := strings.TrimSpace(parts[1])
	return fv.v.Var(lat, "required,latitude") == nil &&
		fv.v.Var(lng, "required,longitude") == nil
}

// isInteger accepts JSON numbers with an integral value and strings that
// parse as base-10 integers. JSON decodes all numbers to float64.
func isInteger(value any) bool {
	switch v := value.(type) {
	case float64:
		return v == math.Trunc(v)
	case int, int64:
		return true
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	}
	return false
}

// isStringArray accepts a non-empty array whose elements are all non-blank
// strings.
func isStringArray(value any) bool {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return false
	}
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
