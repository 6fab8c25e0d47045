package textutil

import (
	"strconv"
	"strings"
)

// Raw site payloads vary their field names across response versions, so
// extraction goes through a tolerant field picker instead of scattering
// per-field lookups through the transform code.

// PickField returns the first non-nil value found under any of the
// candidate keys. Key matching is case-insensitive.
func PickField(source map[string]any, keys ...string) (any, bool) {
	if source == nil {
		return nil, false
	}
	for _, k := range keys {
		if v, ok := source[k]; ok && v != nil {
			return v, true
		}
	}
	// Second pass: case-insensitive.
	for _, k := range keys {
		for sk, v := range source {
			if v != nil && strings.EqualFold(sk, k) {
				return v, true
			}
		}
	}
	return nil, false
}

// PickString returns the first candidate field coerced to a trimmed
// string. Numbers are rendered, everything else is skipped.
func PickString(source map[string]any, keys ...string) string {
	v, ok := PickField(source, keys...)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// PickFloat returns the first candidate field as a float pointer.
// String values go through tolerant locale-aware parsing by the caller,
// so only genuine numeric JSON values resolve here.
func PickFloat(source map[string]any, keys ...string) *float64 {
	v, ok := PickField(source, keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	}
	return nil
}

// PickBool interprets common truthy encodings (bool, "true", "1", "S",
// "SIM", "yes") used by the crawled sites' financing flags.
func PickBool(source map[string]any, keys ...string) bool {
	v, ok := PickField(source, keys...)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToUpper(strings.TrimSpace(t)) {
		case "TRUE", "1", "S", "SIM", "YES", "Y":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}

// PickSlice returns the first candidate field that is a slice of
// values, coercing each element to string where possible.
func PickSlice(source map[string]any, keys ...string) []string {
	v, ok := PickField(source, keys...)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if s := PickString(t, "url", "src", "imageUrl", "image", "link"); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// PickMap returns the first candidate field that is a nested object.
func PickMap(source map[string]any, keys ...string) map[string]any {
	v, ok := PickField(source, keys...)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}
