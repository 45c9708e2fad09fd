package analytics

import (
	"fmt"
	"strings"
)

// Period is a reporting window accepted by the fuel consumption endpoint.
type Period string

const (
	Period7Days    Period = "7days"
	Period30Days   Period = "30days"
	Period3Months  Period = "3months"
	Period6Months  Period = "6months"
	Period12Months Period = "12months"
)

var periods = []Period{Period7Days, Period30Days, Period3Months, Period6Months, Period12Months}

// Periods returns all valid periods, shortest first.
func Periods() []Period {
	out := make([]Period, len(periods))
	copy(out, periods)
	return out
}

// ParsePeriod validates s against the periods the API accepts.
func ParsePeriod(s string) (Period, error) {
	for _, p := range periods {
		if string(p) == s {
			return p, nil
		}
	}
	names := make([]string, len(periods))
	for i, p := range periods {
		names[i] = string(p)
	}
	return "", fmt.Errorf("invalid period %q: must be one of %s", s, strings.Join(names, ", "))
}

// String returns the display name for a period.
func (p Period) String() string {
	switch p {
	case Period7Days:
		return "7 Days"
	case Period30Days:
		return "30 Days"
	case Period3Months:
		return "3 Months"
	case Period6Months:
		return "6 Months"
	case Period12Months:
		return "12 Months"
	default:
		return "Unknown"
	}
}

// Next cycles to the following period, wrapping around.
func (p Period) Next() Period {
	for i, q := range periods {
		if q == p {
			return periods[(i+1)%len(periods)]
		}
	}
	return Period30Days
}
