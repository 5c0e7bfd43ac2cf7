// ABOUTME: Argument parsing helpers shared by CLI commands
// ABOUTME: Handles ids, dates and dollar amounts converted to cents
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func parseID(what, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}

func parseOptionalID(what, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(what, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339. Empty means no date.
func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q (want YYYY-MM-DD or RFC3339)", flag, value)
	}
	return &t, nil
}

// parseMoney converts a dollar amount like "1,250.50" or "$40" to cents.
func parseMoney(flag, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	s := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(value), ",", ""), "$")
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || (frac != "" && !allDigits(frac)) {
		return 0, fmt.Errorf("invalid --%s %q", flag, value)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid --%s %q: at most two decimal places", flag, value)
	}
	frac += strings.Repeat("0", 2-len(frac))

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("invalid --%s %q: amount out of range", flag, value)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q", flag, value)
	}

	total := dollars*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
