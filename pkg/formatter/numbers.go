package formatter

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vendabot/vendabot-engine/pkg/sales"
)

// entry is the common (model, manufacturer, units, revenue) shape shared
// by the product-level formatters, with numbers already rendered.
type entry struct {
	model        string
	manufacturer string
	units        string
	revenue      string
}

func productEntry(row sales.Row, unitsKey, revenueKey string) (entry, error) {
	model, err := stringField(row, "modelo")
	if err != nil {
		return entry{}, err
	}
	manufacturer, err := stringField(row, "fabricante")
	if err != nil {
		return entry{}, err
	}
	units, err := unitsField(row, unitsKey)
	if err != nil {
		return entry{}, err
	}
	revenue, err := moneyField(row, revenueKey)
	if err != nil {
		return entry{}, err
	}
	return entry{model: model, manufacturer: manufacturer, units: units, revenue: revenue}, nil
}

func stringField(row sales.Row, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", fmt.Errorf("campo ausente: %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("campo %q não é texto (%T)", key, v)
	}
	return s, nil
}

// moneyField renders a currency value with two decimal digits and
// thousands separators: 1199880 -> "1,199,880.00".
func moneyField(row sales.Row, key string) (string, error) {
	f, err := numericField(row, key)
	if err != nil {
		return "", err
	}
	return humanize.FormatFloat("#,###.##", f), nil
}

// unitsField renders a unit count with thousands separators and no
// decimals: 1200 -> "1,200".
func unitsField(row sales.Row, key string) (string, error) {
	f, err := numericField(row, key)
	if err != nil {
		return "", err
	}
	return humanize.Comma(int64(f)), nil
}

func numericField(row sales.Row, key string) (float64, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("campo ausente: %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("campo %q não é numérico (%T)", key, v)
}
