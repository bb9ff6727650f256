package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// PeriodScope distinguishes quarterly buckets from yearly ones
type PeriodScope string

const (
	ScopeQuarterly PeriodScope = "QUARTERLY"
	ScopeYearly    PeriodScope = "YEARLY"
)

// IsValid checks if the scope is a known PeriodScope
func (s PeriodScope) IsValid() bool {
	return s == ScopeQuarterly || s == ScopeYearly
}

// Period identifies a reference-rate bucket: either (year, quarter) or a whole year.
// Quarter is zero for yearly periods.
type Period struct {
	scope   PeriodScope
	year    int
	quarter int
}

// NewQuarterlyPeriod creates a quarterly period, validating the quarter range
func NewQuarterlyPeriod(year, quarter int) (Period, error) {
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year: %d", year)
	}
	if quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("invalid quarter: %d", quarter)
	}
	return Period{scope: ScopeQuarterly, year: year, quarter: quarter}, nil
}

// NewYearlyPeriod creates a yearly period
func NewYearlyPeriod(year int) (Period, error) {
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("invalid year: %d", year)
	}
	return Period{scope: ScopeYearly, year: year}, nil
}

// QuarterOf returns the quarterly period containing the given date
func QuarterOf(date time.Time) Period {
	quarter := (int(date.Month())-1)/3 + 1
	return Period{scope: ScopeQuarterly, year: date.Year(), quarter: quarter}
}

// YearOf returns the yearly period containing the given date
func YearOf(date time.Time) Period {
	return Period{scope: ScopeYearly, year: date.Year()}
}

// Scope returns the period scope
func (p Period) Scope() PeriodScope {
	return p.scope
}

// Year returns the period year
func (p Period) Year() int {
	return p.year
}

// Quarter returns the quarter (1..4) for quarterly periods, 0 for yearly ones
func (p Period) Quarter() int {
	return p.quarter
}

// IsQuarterly returns true for quarterly periods
func (p Period) IsQuarterly() bool {
	return p.scope == ScopeQuarterly
}

// Before reports whether p is strictly earlier than other.
// Yearly periods sort before quarterly periods of the same year.
func (p Period) Before(other Period) bool {
	if p.year != other.year {
		return p.year < other.year
	}
	return p.quarter < other.quarter
}

// Equals returns true if both periods identify the same bucket
func (p Period) Equals(other Period) bool {
	return p.scope == other.scope && p.year == other.year && p.quarter == other.quarter
}

// String returns "2025Q2" for quarterly periods and "2025" for yearly ones
func (p Period) String() string {
	if p.scope == ScopeQuarterly {
		return fmt.Sprintf("%04dQ%d", p.year, p.quarter)
	}
	return fmt.Sprintf("%04d", p.year)
}

// ParsePeriod parses the String representation back into a Period
func ParsePeriod(s string) (Period, error) {
	var year, quarter int
	if n, err := fmt.Sscanf(s, "%4dQ%d", &year, &quarter); err == nil && n == 2 {
		return NewQuarterlyPeriod(year, quarter)
	}
	if n, err := fmt.Sscanf(s, "%4d", &year); err == nil && n == 1 && len(s) == 4 {
		return NewYearlyPeriod(year)
	}
	return Period{}, errors.New("invalid period: " + s)
}
