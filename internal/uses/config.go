package uses

import (
	"fmt"
	"math"
)

// intConfig reads an integer config value. JSON numbers arrive as float64.
func intConfig(config map[string]any, key string, def int) (int, error) {
	v, ok := config[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

// positiveInt reads an integer config value that must be above zero.
func positiveInt(config map[string]any, key string, def int) (int, error) {
	n, err := intConfig(config, key, def)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}

func requiredString(config map[string]any, key string) (string, error) {
	s, _ := config[key].(string)
	if s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}
