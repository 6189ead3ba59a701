package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// TenorToYears converts tenor strings like "6M", "18M", "1.5Y" or a bare
// number of years to a year fraction. Months are divided by 12, so "6M" and
// "18M" land exactly on the semi-annual grid.
func TenorToYears(tenor string) (float64, error) {
	t := strings.ToUpper(strings.TrimSpace(tenor))
	if t == "" {
		return 0, fmt.Errorf("empty tenor")
	}

	parse := func(s string) (float64, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid tenor %q: %w", tenor, err)
		}
		return v, nil
	}

	switch {
	case strings.HasSuffix(t, "Y"):
		return parse(strings.TrimSuffix(t, "Y"))
	case strings.HasSuffix(t, "M"):
		n, err := parse(strings.TrimSuffix(t, "M"))
		if err != nil {
			return 0, err
		}
		return n / 12.0, nil
	case strings.HasSuffix(t, "W"):
		n, err := parse(strings.TrimSuffix(t, "W"))
		if err != nil {
			return 0, err
		}
		return n * 7.0 / 365.0, nil
	case strings.HasSuffix(t, "D"):
		n, err := parse(strings.TrimSuffix(t, "D"))
		if err != nil {
			return 0, err
		}
		return n / 365.0, nil
	default:
		return parse(t)
	}
}
