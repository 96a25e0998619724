package utils

import "fmt"

// ParamString pulls a string value out of an open params map, tolerating
// absent keys and non-string JSON scalars.
func ParamString(params map[string]interface{}, key string) string {
	if params == nil {
		return ""
	}
	value, ok := params[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func ParamStringDefault(params map[string]interface{}, key, defaultValue string) string {
	if s := ParamString(params, key); s != "" {
		return s
	}
	return defaultValue
}
