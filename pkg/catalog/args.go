package catalog

import (
	"fmt"
	"strconv"

	"github.com/vendabot/vendabot-engine/pkg/apperrors"
)

// NormalizeArgs validates and default-fills a raw argument payload from
// the decision service against a descriptor. It returns a new map holding
// only declared parameters with coerced values: integers become int,
// numbers float64, string lists []string. A declared year parameter that
// the service omitted is filled with defaultYear. Missing required
// parameters (other than year) and uncoercible values are rejected.
func NormalizeArgs(d Descriptor, raw map[string]any, defaultYear int) (map[string]any, error) {
	out := make(map[string]any, len(d.Parameters))

	for _, p := range d.Parameters {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.Name == "year" {
				out["year"] = defaultYear
				continue
			}
			if p.Required {
				return nil, fmt.Errorf("%w: %s: missing required parameter %q", apperrors.ErrBadArguments, d.Operation, p.Name)
			}
			continue
		}

		coerced, err := coerce(p, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrBadArguments, d.Operation, err)
		}
		out[p.Name] = coerced
	}

	return out, nil
}

// coerce converts a decoded JSON value to the parameter's declared type.
// Models are sloppy about numeric types, so numeric strings are accepted
// for integer and number parameters.
func coerce(p Parameter, v any) (any, error) {
	switch p.Type {
	case TypeInteger:
		switch n := v.(type) {
		case float64:
			return int(n), nil
		case int:
			return n, nil
		case string:
			i, err := strconv.Atoi(n)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %q is not an integer", p.Name, n)
			}
			return i, nil
		}
		return nil, fmt.Errorf("parameter %q: expected integer, got %T", p.Name, v)

	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %q is not a number", p.Name, n)
			}
			return f, nil
		}
		return nil, fmt.Errorf("parameter %q: expected number, got %T", p.Name, v)

	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("parameter %q: expected boolean, got %T", p.Name, v)

	case TypeStringList:
		switch list := v.(type) {
		case []string:
			return list, nil
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("parameter %q: expected list of strings, found %T element", p.Name, item)
				}
				out = append(out, s)
			}
			return out, nil
		}
		return nil, fmt.Errorf("parameter %q: expected list of strings, got %T", p.Name, v)

	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("parameter %q: expected string, got %T", p.Name, v)
	}

	return nil, fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
}
