// Package normalize converts the human formats used in inventory CSV files
// (dollar prices, MM/DD/YYYY dates) to and from their stored forms.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// dateLayout accepts one or two digit month and day.
	dateLayout = "1/2/2006"
	// DateFormat is the layout written back out to CSV.
	DateFormat = "01/02/2006"
	// TimestampFormat is how a stored timestamp is shown on screen.
	TimestampFormat = "2006-01-02 15:04:05"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CurrencyToCents turns "$12.34" into 1234. The amount is scaled as a float
// and truncated, so "$0.29" gives 28. Anything unparsable gives 0.
func CurrencyToCents(text string) int {
	v, ok := ScaleToCents(strings.Trim(text, "$"))
	if !ok {
		return 0
	}
	return v
}

// ScaleToCents parses a plain decimal number and returns it multiplied by 100
// and truncated toward zero.
func ScaleToCents(text string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	scaled := f * 100
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || scaled >= math.MaxInt64 || scaled <= math.MinInt64 {
		return 0, false
	}
	return int(scaled), true
}

// ParseQuantity parses a whole number. Decimal input such as "7.00" is rejected.
func ParseQuantity(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, text)
	}
	return n, nil
}

// ParseDate parses MM/DD/YYYY.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match MM/DD/YYYY", ErrInvalidDate, text)
	}
	return t, nil
}

// FormatCurrency renders cents as dollars without padding the fraction:
// 1234 is "$12.34", 500 is "$5.0" and 1230 is "$12.3".
func FormatCurrency(cents int) string {
	return "$" + formatFloat(float64(cents)/100)
}

// formatFloat prints the shortest representation that reads back to f,
// keeping at least one fractional digit.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatDate renders t as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// FormatTimestamp renders t with microseconds only when they are set.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format(TimestampFormat)
	}
	return t.Format(TimestampFormat + ".000000")
}
