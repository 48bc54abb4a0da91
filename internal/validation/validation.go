package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

var (
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9]))?$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// IsUUID reports whether s is a canonical RFC 4122 identifier of version 1-5.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// IsClockTime reports whether s is HH:MM or HH:MM:SS on a 24-hour clock.
func IsClockTime(s string) bool {
	return clockPattern.MatchString(s)
}

// IsDate reports whether s is a real YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD calendar date. Overflowing days such as
// 2024-02-30 are rejected.
func ParseDate(s string) (domain.Date, error) {
	if !datePattern.MatchString(s) {
		return domain.Date{}, &FormatError{Field: "date", Value: s, Expected: "YYYY-MM-DD"}
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return domain.Date{}, &FormatError{Field: "date", Value: s, Expected: "a valid calendar date"}
	}
	return domain.NewDate(t), nil
}

// ParseClock parses HH:MM or HH:MM:SS into a TimeOfDay.
func ParseClock(s string) (domain.TimeOfDay, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &FormatError{Field: "time", Value: s, Expected: "HH:MM or HH:MM:SS"}
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	return domain.NewTimeOfDay(h, minute, sec), nil
}

// MissingFields returns, in order, the names whose values are blank.
func MissingFields(fields []Field) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

// Field pairs a wire field name with its raw value.
type Field struct {
	Name  string
	Value string
}

// FormatError describes a value that failed a format check.
type FormatError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FormatError) Error() string {
	return "invalid " + e.Field + " " + strconv.Quote(e.Value) + ": expected " + e.Expected
}
