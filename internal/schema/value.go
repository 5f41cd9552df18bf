package schema

import "strconv"

// JSON-shape helpers. Raw schemas arrive as map[string]interface{} straight
// from json.Unmarshal, so every accessor has to be defensive about types.

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// stringAt returns the value of the first key that holds a non-empty string
func stringAt(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// boolAt is true only for the literal boolean true; no truthy coercion
func boolAt(m map[string]interface{}, key string) bool {
	b, ok := m[key].(bool)
	return ok && b
}

// intValue coerces a JSON number (or numeric string) to an int
func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
	}
	return 0, false
}
