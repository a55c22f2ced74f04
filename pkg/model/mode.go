package model

import (
	"fmt"
	"strings"
)

// CompareMode selects how the baseline/optimized delta is expressed.
type CompareMode int

const (
	// ModePercent expresses the delta as 100*(base-opt)/base.
	ModePercent CompareMode = 0
	// ModeSpeedup expresses the delta as base/opt.
	ModeSpeedup CompareMode = 1
)

// String returns the string representation of CompareMode.
func (m CompareMode) String() string {
	switch m {
	case ModePercent:
		return "percent"
	case ModeSpeedup:
		return "speedup"
	default:
		return "unknown"
	}
}

// ParseCompareMode parses a mode name as accepted on the command line.
func ParseCompareMode(s string) (CompareMode, error) {
	switch strings.ToLower(s) {
	case "percent", "percentage", "0":
		return ModePercent, nil
	case "speedup", "multiplicative", "1":
		return ModeSpeedup, nil
	default:
		return 0, fmt.Errorf("unknown compare mode: %s (valid: percent, speedup)", s)
	}
}
