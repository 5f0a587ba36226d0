package worktime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

var (
	ErrInvalidClock    = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidDuration = errors.New("invalid duration")
)

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock converts an "HH:MM" clock string into minutes since midnight.
// An empty string is treated as a missing time and yields 0 without error.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return hours*MinutesPerHour + minutes, nil
}

// FormatMinutes renders whole minutes as "{h}h {m}m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		return "-" + FormatMinutes(-minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// MinutesToDecimalHours converts whole minutes to decimal hours.
func MinutesToDecimalHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(MinutesPerHour))
}

// DecimalHoursToMinutes converts decimal hours to minutes, rounded to the nearest whole minute.
func DecimalHoursToMinutes(hours decimal.Decimal) int {
	return int(hours.Mul(decimal.NewFromInt(MinutesPerHour)).Round(0).IntPart())
}

var hmRegex = regexp.MustCompile(`^(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?$`)

// ParseDurationText parses a manually entered duration and returns whole minutes.
// Accepted forms: "1h 15m", "2h", "45m", "1.25" (decimal hours), "1:15" and "2" (hours).
func ParseDurationText(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	switch {
	case strings.ContainsAny(s, "hm"):
		m := hmRegex.FindStringSubmatch(s)
		if m == nil || (m[1] == "" && m[2] == "") {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*MinutesPerHour + minutes, nil

	case strings.Contains(s, ":"):
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		hours, errH := strconv.Atoi(parts[0])
		minutes, errM := strconv.Atoi(parts[1])
		if errH != nil || errM != nil || hours < 0 || minutes < 0 || minutes > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return hours*MinutesPerHour + minutes, nil

	default:
		hours, err := decimal.NewFromString(s)
		if err != nil || hours.IsNegative() {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return DecimalHoursToMinutes(hours), nil
	}
}

// ElapsedMinutes returns the minutes between two clock readings on a single shift.
// An end before the start is read as a shift crossing midnight.
func ElapsedMinutes(startMinutes, endMinutes int) int {
	elapsed := endMinutes - startMinutes
	if elapsed < 0 {
		elapsed += MinutesPerDay
	}
	return elapsed
}
